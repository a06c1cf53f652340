package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccessTokenExpiry  = 15 * time.Minute
	defaultRefreshTokenExpiry = 7 * 24 * time.Hour
	defaultBcryptCost         = 12
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      string

	JWTAccessSecret  string
	JWTAccessExpiry  time.Duration
	JWTRefreshSecret string
	JWTRefreshExpiry time.Duration
	JWTIssuer        string
	BcryptCost       int
	LoginRateLimit   string
	FrontendBaseURL  string
	RedisURL         string
	PosthogAPIKey    string
	PosthogEndpoint  string
	MigrateOnStartup bool

	// Refresh token cookie
	RefreshTokenCookieName string
	RefreshTokenCookiePath string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_ACCESS_SECRET", "")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("JWT_ACCESS_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_REFRESH_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "teamops")
	viper.SetDefault("BCRYPT_COST", defaultBcryptCost)
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("MIGRATE_ON_STARTUP", false)
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/auth")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")
	cfg.MigrateOnStartup = viper.GetBool("MIGRATE_ON_STARTUP")
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.JWTAccessSecret = viper.GetString("JWT_ACCESS_SECRET")
	if cfg.JWTAccessSecret == "" {
		cfg.JWTAccessSecret = "insecure-access-secret-change-me" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_ACCESS_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTRefreshSecret = viper.GetString("JWT_REFRESH_SECRET")
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = "insecure-refresh-secret-change-me"
		log.Println("Warning: JWT_REFRESH_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTAccessExpiry = durationOrDefault("JWT_ACCESS_EXPIRY_DURATION", defaultAccessTokenExpiry)
	cfg.JWTRefreshExpiry = durationOrDefault("JWT_REFRESH_EXPIRY_DURATION", defaultRefreshTokenExpiry)

	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		log.Printf("Warning: Invalid value for BCRYPT_COST (%d). Defaulting to %d.\n", cfg.BcryptCost, defaultBcryptCost)
		cfg.BcryptCost = defaultBcryptCost
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
