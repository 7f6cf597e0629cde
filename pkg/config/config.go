package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External market data providers
	FMP     FMPConfig
	Finnhub FinnhubConfig
	Stooq   StooqConfig

	// Scoring
	Scoring ScoringConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
	MetricsPort    string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool

	// Quote cache TTL used by the region dispatcher
	QuoteTTL time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	APIKey  string
	BaseURL string
	// Requests per minute allowed by the plan
	RateLimit int
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	APIKey    string
	BaseURL   string
	RateLimit int
}

// StooqConfig holds the Stooq HTML fallback configuration
type StooqConfig struct {
	BaseURL string
	Enabled bool
}

// ScoringConfig holds HQS blend weights and calibration parameters
// ⭐ SSOT: 점수 가중치는 여기서만 정의
type ScoringConfig struct {
	// Blend weights. The base path scores on momentum alone; dividend history,
	// when present, folds in at DividendWeight. Stability and risk default to 0
	// and can be raised without changing the public contract.
	DividendWeight  float64
	StabilityWeight float64
	RiskWeight      float64

	// Backtest
	ScoreThreshold float64
	RiskFreeRate   float64

	// Calibration
	CalibrationWindow int
	MinRegimeSamples  int
	MinTotalSamples   int
	BenchmarkSymbol   string
	HistoryDays       int

	// Symbols sampled by the nightly factor snapshot job
	TrackedSymbols []string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "hqs"),
			User:            getEnv("DB_USER", "hqs"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			QuoteTTL: getEnvAsDuration("REDIS_QUOTE_TTL", "30s"),
		},

		// External APIs
		FMP: FMPConfig{
			APIKey:    getEnv("FMP_API_KEY", ""),
			BaseURL:   getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
			RateLimit: getEnvAsInt("FMP_RATE_LIMIT", 300),
		},

		Finnhub: FinnhubConfig{
			APIKey:    getEnv("FINNHUB_API_KEY", ""),
			BaseURL:   getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			RateLimit: getEnvAsInt("FINNHUB_RATE_LIMIT", 60),
		},

		Stooq: StooqConfig{
			BaseURL: getEnv("STOOQ_BASE_URL", "https://stooq.com"),
			Enabled: getEnvAsBool("STOOQ_ENABLED", true),
		},

		// Scoring
		Scoring: ScoringConfig{
			DividendWeight:    getEnvAsFloat("HQS_DIVIDEND_WEIGHT", 0.15),
			StabilityWeight:   getEnvAsFloat("HQS_STABILITY_WEIGHT", 0),
			RiskWeight:        getEnvAsFloat("HQS_RISK_WEIGHT", 0),
			ScoreThreshold:    getEnvAsFloat("HQS_SCORE_THRESHOLD", 70),
			RiskFreeRate:      getEnvAsFloat("HQS_RISK_FREE_RATE", 0),
			CalibrationWindow: getEnvAsInt("HQS_CALIBRATION_WINDOW", 90),
			MinRegimeSamples:  getEnvAsInt("HQS_MIN_REGIME_SAMPLES", 20),
			MinTotalSamples:   getEnvAsInt("HQS_MIN_TOTAL_SAMPLES", 30),
			BenchmarkSymbol:   getEnv("HQS_BENCHMARK_SYMBOL", "SPY"),
			HistoryDays:       getEnvAsInt("HQS_HISTORY_DAYS", 365),
			TrackedSymbols:    getEnvAsSlice("HQS_TRACKED_SYMBOLS", "AAPL,MSFT,NVDA,GOOGL,AMZN"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		MetricsPort:    getEnv("METRICS_PORT", "9091"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Database URL is required
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	// Blend weights must leave room for the momentum base
	total := c.Scoring.DividendWeight + c.Scoring.StabilityWeight + c.Scoring.RiskWeight
	if total < 0 || total > 1 {
		return fmt.Errorf("HQS blend weights must sum to a value in [0, 1], got %.2f", total)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
