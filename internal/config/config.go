package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration (MySQL)
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (GridFS media storage)
	MongoDB MongoConfig `json:"mongodb"`

	// Media upload limits
	Media MediaConfig `json:"media"`

	// Feed tuning knobs for the synchronizer and wall API
	Feed FeedConfig `json:"feed"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	WallPort     string `json:"wall_port"`
	MediaPort    string `json:"media_port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// MediaConfig contains upload size limits per media kind, in bytes.
type MediaConfig struct {
	MaxImageBytes int64 `json:"max_image_bytes"`
	MaxVideoBytes int64 `json:"max_video_bytes"`
}

// FeedConfig contains feed pagination and polling configuration.
type FeedConfig struct {
	PageSize            int           `json:"page_size"`
	PollInterval        time.Duration `json:"poll_interval"`
	LeaderboardInterval time.Duration `json:"leaderboard_interval"`
	InitialLoadTimeout  time.Duration `json:"initial_load_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

// Load builds a Config from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			WallPort:     getEnvOrDefault("WALL_PORT", "8080"),
			MediaPort:    getEnvOrDefault("MEDIA_PORT", "8081"),
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvIntOrDefault("READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("WRITE_TIMEOUT", 30),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "wall_user"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "socialwall_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "socialwall_media"),
		},
		Media: MediaConfig{
			MaxImageBytes: getEnvInt64OrDefault("MAX_IMAGE_BYTES", 4<<20),
			MaxVideoBytes: getEnvInt64OrDefault("MAX_VIDEO_BYTES", 16<<20),
		},
		Feed: FeedConfig{
			PageSize:            getEnvIntOrDefault("FEED_PAGE_SIZE", 10),
			PollInterval:        time.Duration(getEnvIntOrDefault("FEED_POLL_SECONDS", 5)) * time.Second,
			LeaderboardInterval: time.Duration(getEnvIntOrDefault("LEADERBOARD_REFRESH_SECONDS", 30)) * time.Second,
			InitialLoadTimeout:  time.Duration(getEnvIntOrDefault("INITIAL_LOAD_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
}

// DSN builds the MySQL connection string from database config.
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI builds the MongoDB connection URI.
func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.MongoDB.Username, cfg.MongoDB.Password, cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
