package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Auth
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	PasswordHash       string // bcrypt hash of the owner password
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "5-M"
	CORSAllowedOrigins []string

	// Ingestion
	MaxUploadBytes     int64
	ReconcileTolerance decimal.Decimal

	// Categorization
	GeminiAPIKey         string
	GeminiModel          string
	CategorizerTimeout   time.Duration
	CategorizerWorkers   int
	CategorizerQueueSize int

	// Archive
	ArchiveBucket      string
	ArchivePrefix      string
	GCSCredentialsFile string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "fintrack")
	viper.SetDefault("PASSWORD_HASH", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	viper.SetDefault("RECONCILE_TOLERANCE", "0.01")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("CATEGORIZER_TIMEOUT", "60s")
	viper.SetDefault("CATEGORIZER_WORKERS", 2)
	viper.SetDefault("CATEGORIZER_QUEUE_SIZE", 64)
	viper.SetDefault("STATEMENT_ARCHIVE_BUCKET", "")
	viper.SetDefault("STATEMENT_ARCHIVE_PREFIX", "statements")
	viper.SetDefault("GCS_CREDENTIALS_FILE", "")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 720*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "fintrack"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.PasswordHash = viper.GetString("PASSWORD_HASH")
	if cfg.PasswordHash == "" {
		log.Println("Warning: PASSWORD_HASH not set. Login will reject every password.")
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}

	tolerance, err := decimal.NewFromString(viper.GetString("RECONCILE_TOLERANCE"))
	if err != nil || tolerance.IsNegative() {
		log.Printf("Warning: Invalid value for RECONCILE_TOLERANCE ('%s'). Defaulting to 0.01.\n", viper.GetString("RECONCILE_TOLERANCE"))
		tolerance = decimal.RequireFromString("0.01")
	}
	cfg.ReconcileTolerance = tolerance

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Transactions will not be categorized automatically.")
	}
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	cfg.CategorizerTimeout = durationOrDefault("CATEGORIZER_TIMEOUT", 60*time.Second)
	cfg.CategorizerWorkers = viper.GetInt("CATEGORIZER_WORKERS")
	cfg.CategorizerQueueSize = viper.GetInt("CATEGORIZER_QUEUE_SIZE")

	cfg.ArchiveBucket = viper.GetString("STATEMENT_ARCHIVE_BUCKET")
	cfg.ArchivePrefix = viper.GetString("STATEMENT_ARCHIVE_PREFIX")
	cfg.GCSCredentialsFile = viper.GetString("GCS_CREDENTIALS_FILE")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
