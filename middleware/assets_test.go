package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	require.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	hash := computeFileHash(tmpFile)
	assert.Len(t, hash, 8)
	assert.Equal(t, hash, computeFileHash(tmpFile))

	assert.Equal(t, "", computeFileHash("non_existent_file.css"))
}

func TestInitAssetVersions(t *testing.T) {
	// Versions are computed relative to the working directory
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.MkdirAll("static/css", 0755))
	require.NoError(t, os.MkdirAll("static/js", 0755))
	require.NoError(t, os.WriteFile("static/css/site.css", []byte("css"), 0644))
	require.NoError(t, os.WriteFile("static/js/site.js", []byte("js"), 0644))

	InitAssetVersions()

	ctx := context.Background()
	assert.NotEqual(t, "1", GetCSSVersion(ctx))
	assert.NotEqual(t, "1", GetSiteJSVersion(ctx))
	// Missing favicon falls back to the default version
	assert.Equal(t, "1", GetFaviconVersion(ctx))
}
