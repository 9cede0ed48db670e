package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	SQLitePath        string
	Port              string
	IsProduction      bool
	CORSAllowedOrigin string
	RateLimit         string // ulule/limiter format, e.g. "120-M"

	// Upstream providers.
	TCMBBaseURL        string
	TCMBAPIKey         string
	OECDBaseURL        string
	ProviderTimeout    time.Duration
	ProviderMaxRetries uint64
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("SQLITE_PATH", "kiraci.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("TCMB_BASE_URL", "")
	viper.SetDefault("TCMB_API_KEY", "")
	viper.SetDefault("OECD_BASE_URL", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("PROVIDER_MAX_RETRIES", 3)

	viper.AutomaticEnv()

	providerTimeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT (%q). Defaulting to %s.\n", providerTimeoutStr, providerTimeout)
	}

	if viper.GetString("TCMB_API_KEY") == "" {
		log.Println("Warning: TCMB_API_KEY not set. Fetching exchange rates from EVDS will fail.")
	}

	return &Config{
		SQLitePath:         viper.GetString("SQLITE_PATH"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		CORSAllowedOrigin:  viper.GetString("CORS_ALLOWED_ORIGIN"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		TCMBBaseURL:        viper.GetString("TCMB_BASE_URL"),
		TCMBAPIKey:         viper.GetString("TCMB_API_KEY"),
		OECDBaseURL:        viper.GetString("OECD_BASE_URL"),
		ProviderTimeout:    providerTimeout,
		ProviderMaxRetries: viper.GetUint64("PROVIDER_MAX_RETRIES"),
	}, nil
}
