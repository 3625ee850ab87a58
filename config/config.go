package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinIPHashSecretLength is the minimum required length for the IP hash secret in production
	MinIPHashSecretLength = 32

	// SuccessModeTimer reports success a fixed delay after dispatch, without reading the response
	SuccessModeTimer = "timer"
	// SuccessModeResponse waits for the form endpoint's answer and can report failure
	SuccessModeResponse = "response"
)

type Config struct {
	ServerPort     string
	Environment    string
	AppURL         string
	AllowedOrigins []string
	// Database
	DBPath           string
	TursoDatabaseURL string
	TursoAuthToken   string
	// Variants
	VariantsFile   string
	DefaultVariant string
	// Contact form
	FormEndpointBase  string
	FormSuccessMode   string
	FormSuccessDelay  time.Duration
	RelayTimeout      time.Duration
	LeadRetentionDays int
	IPHashSecret      string
	// Background jobs (cron specs, empty disables the job)
	MaintenanceSchedule string
	LeadExportSchedule  string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	LeadNotifyTo  []string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	ExportDir         string
	// Headless Chrome used by the smoke check
	ChromePath string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	ipHashSecret := getEnv("IP_HASH_SECRET", "")

	// Validate the hash secret - this will fatal in production if invalid
	ValidateIPHashSecret(ipHashSecret, environment)

	// In development, generate a secure secret if none provided
	if ipHashSecret == "" && environment != "production" {
		ipHashSecret = GenerateSecureSecret()
		log.Println("[INFO] Generated temporary IP hash secret for development. Set IP_HASH_SECRET env var for stable lead hashes.")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		Environment:         environment,
		AppURL:              strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		AllowedOrigins:      strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		DBPath:              getEnv("DB_PATH", "db/site.db"),
		TursoDatabaseURL:    getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:      getEnv("TURSO_AUTH_TOKEN", ""),
		VariantsFile:        getEnv("VARIANTS_FILE", ""),
		DefaultVariant:      getEnv("DEFAULT_VARIANT", "color-robotics"),
		FormEndpointBase:    strings.TrimRight(getEnv("FORM_ENDPOINT_BASE", "https://submit-form.com"), "/"),
		FormSuccessMode:     getEnvChoice("FORM_SUCCESS_MODE", SuccessModeTimer, SuccessModeTimer, SuccessModeResponse),
		FormSuccessDelay:    time.Duration(getEnvInt("FORM_SUCCESS_DELAY_MS", 1000)) * time.Millisecond,
		RelayTimeout:        getEnvDuration("RELAY_TIMEOUT", 10*time.Second),
		LeadRetentionDays:   getEnvInt("LEAD_RETENTION_DAYS", 365),
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "@hourly"),
		LeadExportSchedule:  getEnv("LEAD_EXPORT_SCHEDULE", ""),
		IPHashSecret:        ipHashSecret,
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		EmailFrom:           getEnv("EMAIL_FROM", "noreply@colorrobotics.ai"),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Color Robotics Website"),
		EmailTestMode:       getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		LeadNotifyTo:        splitList(getEnv("LEAD_NOTIFY_TO", "")),
		TurnstileSiteKey:    getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey:  getEnv("TURNSTILE_SECRET_KEY", ""),
		R2AccountID:         getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:   getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:        getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:         getEnv("R2_PUBLIC_URL", ""),
		ExportDir:           getEnv("EXPORT_DIR", "exports"),
		ChromePath:          getEnv("CHROME_PATH", ""),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// FormEndpoint returns the third-party submission URL for a form token
func (c *Config) FormEndpoint(token string) string {
	return c.FormEndpointBase + "/" + token
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvChoice returns the value of key if it is one of the allowed values
func getEnvChoice(key, defaultValue string, allowed ...string) string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	log.Printf("[WARNING] Unsupported value for %s: %q, using %s", key, value, defaultValue)
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateIPHashSecret validates the secret used to key lead IP hashes.
// In production, it must be at least 32 bytes and not a known insecure default
func ValidateIPHashSecret(secret string, environment string) error {
	// Known insecure defaults that must be rejected
	insecureDefaults := []string{
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] IP_HASH_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			log.Printf("[WARNING] IP_HASH_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" {
		if len(secret) < MinIPHashSecretLength {
			log.Fatalf("[CRITICAL] IP_HASH_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinIPHashSecretLength, len(secret))
		}
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
