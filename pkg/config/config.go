package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Gemini    GeminiConfig
	YouTube   YouTubeConfig
	Analysis  AnalysisConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8000"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"study_buddy"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. Redis is optional: when disabled the
// service falls back to an in-memory store for job status and analysis caching.
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `envconfig:"GEMINI_API_KEY"`
	Model     string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	MaxRetry  int    `envconfig:"GEMINI_MAX_RETRY" default:"3"`
	TimeoutMs int    `envconfig:"GEMINI_TIMEOUT_MS" default:"60000"`
}

// YouTubeConfig holds the transcript/metadata client configuration
type YouTubeConfig struct {
	BaseURL     string `envconfig:"YOUTUBE_BASE_URL" default:"https://www.youtube.com"`
	OEmbedURL   string `envconfig:"YOUTUBE_OEMBED_URL" default:"https://www.youtube.com/oembed"`
	Language    string `envconfig:"YOUTUBE_CAPTION_LANG" default:"en"`
	HTTPTimeout int    `envconfig:"YOUTUBE_HTTP_TIMEOUT" default:"30"`
}

// AnalysisConfig holds pipeline tuning knobs
type AnalysisConfig struct {
	WorkerCount   int `envconfig:"ANALYSIS_WORKERS" default:"2"`
	CacheTTLMin   int `envconfig:"ANALYSIS_CACHE_TTL_MIN" default:"60"`
	JobTimeoutMin int `envconfig:"ANALYSIS_JOB_TIMEOUT_MIN" default:"5"`
	TranscriptCap int `envconfig:"ANALYSIS_TRANSCRIPT_CAP" default:"4000"`
}

// SchedulerConfig holds cron maintenance configuration
type SchedulerConfig struct {
	Enabled       bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	RequeueSpec   string `envconfig:"SCHEDULER_REQUEUE_SPEC" default:"*/5 * * * *"`
	PurgeSpec     string `envconfig:"SCHEDULER_PURGE_SPEC" default:"0 * * * *"`
	StaleAfterMin int    `envconfig:"SCHEDULER_STALE_AFTER_MIN" default:"15"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Analysis.WorkerCount < 1 {
		return fmt.Errorf("ANALYSIS_WORKERS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
