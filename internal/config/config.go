package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"agrisense-api/internal/adapters/agmarknet"
	"agrisense-api/internal/adapters/unsplash"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "secretkey"

// Config holds all configuration for the application.
// It is built once by Load and never mutated afterwards.
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Weather   WeatherConfig
	AI        AIConfig
	Market    MarketConfig
	HTTP      HTTPConfig
	AdminSeed AdminSeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql | sqlite
	DSN      string // full connection string, wins over the parts below
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string // sqlite file path
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// WeatherConfig holds weather enrichment configuration
type WeatherConfig struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheSize    int
	SyncSchedule string
}

// AIConfig holds advisory service configuration
type AIConfig struct {
	ModelServiceURL string
	LLMBaseURL      string
	LLMToken        string
	LLMModel        string
	Timeout         time.Duration
}

// MarketConfig holds the crop price feed and advice photo settings
type MarketConfig struct {
	AgmarknetKey     string
	AgmarknetBaseURL string
	UnsplashKey      string
	UnsplashBaseURL  string
	Timeout          time.Duration
}

// HTTPConfig holds CORS and rate limit settings
type HTTPConfig struct {
	ClientURL       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	AuthRateLimit   int
}

// AdminSeedConfig holds the bootstrap admin account
type AdminSeedConfig struct {
	Name     string
	Email    string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	cfg := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "5000"),
		Database:  loadDatabaseConfig(appMode),
		JWT:       loadJWTConfig(appMode),
		Weather:   loadWeatherConfig(),
		AI:        loadAIConfig(),
		Market:    loadMarketConfig(),
		HTTP:      loadHTTPConfig(),
		AdminSeed: loadAdminSeedConfig(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", c.Database.Driver)
	}
	if c.JWT.AccessTokenMins <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_MINUTES must be positive, got %d", c.JWT.AccessTokenMins)
	}
	if c.IsProd() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DSN:      getEnv("DB_DSN", ""),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "agrisense"),
		Path:     getEnv("DB_PATH", "agrisense.db"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", getEnv("JWT_SECRET", defaultJWTSecret)),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
	}
}

func loadWeatherConfig() WeatherConfig {
	return WeatherConfig{
		APIKey:       getEnv("WEATHERAPI_COM_KEY", ""),
		BaseURL:      getEnv("WEATHER_API_BASE_URL", "http://api.weatherapi.com/v1"),
		Timeout:      time.Duration(getEnvInt("WEATHER_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:     time.Duration(getEnvInt("WEATHER_CACHE_MINUTES", 120)) * time.Minute,
		CacheSize:    getEnvInt("WEATHER_CACHE_SIZE", 1024),
		SyncSchedule: lookupEnv("WEATHER_SYNC_CRON", "@every 6h"),
	}
}

func loadAIConfig() AIConfig {
	return AIConfig{
		ModelServiceURL: getEnv("AI_SERVICE_URL", ""),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "https://router.huggingface.co/v1"),
		LLMToken:        getEnv("HF_TOKEN", ""),
		LLMModel:        getEnv("LLM_MODEL", "openai/gpt-oss-120b:cerebras"),
		Timeout:         time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func loadMarketConfig() MarketConfig {
	return MarketConfig{
		AgmarknetKey:     getEnv("AGMARKNET_API_KEY", ""),
		AgmarknetBaseURL: getEnv("AGMARKNET_BASE_URL", agmarknet.DefaultBaseURL),
		UnsplashKey:      getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashBaseURL:  getEnv("UNSPLASH_BASE_URL", unsplash.DefaultBaseURL),
		Timeout:          time.Duration(getEnvInt("MARKET_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func loadHTTPConfig() HTTPConfig {
	return HTTPConfig{
		ClientURL:       getEnv("CLIENT_URL", "http://localhost:5173"),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT_MAX", 20),
	}
}

func loadAdminSeedConfig() AdminSeedConfig {
	return AdminSeedConfig{
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Email:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is like getEnv but an explicitly empty value is kept
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// WeatherEnabled reports whether an API credential for enrichment is configured
func (c *Config) WeatherEnabled() bool {
	return c.Weather.APIKey != ""
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.IsDev() {
		return "*"
	}
	return c.HTTP.ClientURL
}
