package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"sync"
)

var (
	cssVersion        string
	faviconVersion    string
	siteJSVersion     string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		cssVersion = computeFileHash("static/css/site.css")
		if cssVersion == "" {
			cssVersion = "1"
		}
		log.Printf("[INFO] CSS version initialized: %s", cssVersion)

		faviconVersion = computeFileHash("static/images/favicon.svg")
		if faviconVersion == "" {
			faviconVersion = "1"
		}
		log.Printf("[INFO] Favicon version initialized: %s", faviconVersion)

		siteJSVersion = computeFileHash("static/js/site.js")
		if siteJSVersion == "" {
			siteJSVersion = "1"
		}
		log.Printf("[INFO] Site JS version initialized: %s", siteJSVersion)
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the CSS file version hash for cache busting
// Note: ctx parameter is for API consistency with other middleware helpers,
// but the version is computed once at startup and is global
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return "1"
	}
	return cssVersion
}

// GetFaviconVersion returns the favicon file version hash for cache busting
func GetFaviconVersion(ctx context.Context) string {
	if faviconVersion == "" {
		return "1"
	}
	return faviconVersion
}

// GetSiteJSVersion returns the site.js file version hash for cache busting
func GetSiteJSVersion(ctx context.Context) string {
	if siteJSVersion == "" {
		return "1"
	}
	return siteJSVersion
}
