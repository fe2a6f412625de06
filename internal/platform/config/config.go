package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret         = "a-very-secret-key-should-be-longer-and-random"
	defaultTimezone          = "Africa/Maseru"
	defaultExcerptLength     = 100
	defaultMonthlyBudget     = "3500"
	defaultRateLimit         = "60-M"
	defaultMigrationsPath    = "file://migrations"
	defaultCORSAllowedOrigin = "http://localhost:3000"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string // Empty selects the in-memory store
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	RateLimit          string // ulule formatted rate, e.g. "60-M"
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	MigrationsPath     string

	DescriptionExcerptLength int
	ProcessingLocation       *time.Location
	MonthlyBudget            decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "sms-budget-tracker")
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSAllowedOrigin)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("DESCRIPTION_EXCERPT_LENGTH", defaultExcerptLength)
	v.SetDefault("PROCESSING_TIMEZONE", defaultTimezone)
	v.SetDefault("MONTHLY_BUDGET", defaultMonthlyBudget)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		PosthogAPIKey:  v.GetString("POSTHOG_API_KEY"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.DescriptionExcerptLength = v.GetInt("DESCRIPTION_EXCERPT_LENGTH")
	if cfg.DescriptionExcerptLength <= 0 || cfg.DescriptionExcerptLength > defaultExcerptLength {
		log.Printf("Warning: Invalid value for DESCRIPTION_EXCERPT_LENGTH (%d). Defaulting to %d.\n", cfg.DescriptionExcerptLength, defaultExcerptLength)
		cfg.DescriptionExcerptLength = defaultExcerptLength
	}

	tz := v.GetString("PROCESSING_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Unknown PROCESSING_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.ProcessingLocation = loc

	budget, err := decimal.NewFromString(v.GetString("MONTHLY_BUDGET"))
	if err != nil || !budget.IsPositive() {
		log.Printf("Warning: Invalid value for MONTHLY_BUDGET ('%s'). Defaulting to %s.\n", v.GetString("MONTHLY_BUDGET"), defaultMonthlyBudget)
		budget = decimal.RequireFromString(defaultMonthlyBudget)
	}
	cfg.MonthlyBudget = budget

	return cfg
}
