package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Forecast ForecastConfig
	Stock    StockConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq keyword connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type CacheConfig struct {
	Enabled        bool
	RedisURL       string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RiskTTLSeconds int
}

type ForecastConfig struct {
	PriceMode          string
	RiskHorizonDays    int
	HistoryYears       int
	RecorderQueueSize  int
	RecorderWorkers    int
	RecorderTimeoutSec int
}

// RecorderTimeout is the per-write deadline of the forecast recorder.
func (c ForecastConfig) RecorderTimeout() time.Duration {
	return time.Duration(c.RecorderTimeoutSec) * time.Second
}

type StockConfig struct {
	// Backend is "memory" or "redis".
	Backend   string
	SessionID string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "medicast")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_RISK_TTL_SECONDS", 60)

	viper.SetDefault("FORECAST_PRICE_MODE", "fixed")
	viper.SetDefault("FORECAST_RISK_HORIZON_DAYS", 30)
	viper.SetDefault("FORECAST_HISTORY_YEARS", 3)
	viper.SetDefault("RECORDER_QUEUE_SIZE", 256)
	viper.SetDefault("RECORDER_WORKERS", 4)
	viper.SetDefault("RECORDER_TIMEOUT_SECONDS", 5)

	viper.SetDefault("STOCK_BACKEND", "memory")
	viper.SetDefault("STOCK_SESSION_ID", "default")
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:        viper.GetBool("CACHE_ENABLED"),
			RedisURL:       viper.GetString("REDIS_URL"),
			RedisHost:      viper.GetString("REDIS_HOST"),
			RedisPort:      viper.GetString("REDIS_PORT"),
			RedisPassword:  viper.GetString("REDIS_PASSWORD"),
			RedisDB:        viper.GetInt("REDIS_DB"),
			RiskTTLSeconds: viper.GetInt("CACHE_RISK_TTL_SECONDS"),
		},
		Forecast: ForecastConfig{
			PriceMode:          viper.GetString("FORECAST_PRICE_MODE"),
			RiskHorizonDays:    viper.GetInt("FORECAST_RISK_HORIZON_DAYS"),
			HistoryYears:       viper.GetInt("FORECAST_HISTORY_YEARS"),
			RecorderQueueSize:  viper.GetInt("RECORDER_QUEUE_SIZE"),
			RecorderWorkers:    viper.GetInt("RECORDER_WORKERS"),
			RecorderTimeoutSec: viper.GetInt("RECORDER_TIMEOUT_SECONDS"),
		},
		Stock: StockConfig{
			Backend:   viper.GetString("STOCK_BACKEND"),
			SessionID: viper.GetString("STOCK_SESSION_ID"),
		},
	}
}
