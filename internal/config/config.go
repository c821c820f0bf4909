package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Sources   SourcesConfig
	GameAPI   GameAPIConfig
	Logging   LoggingConfig
	Hierarchy Hierarchy
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ExitWaitTimeout time.Duration
	AllowOrigin     string
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig is optional; an empty Addr disables notifications and the
// shared rate-limit store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Period  time.Duration
}

type SourcesConfig struct {
	DataDir     string
	CatalogFile string
	BlipsFile   string
	MTAURL      string
	MTAFile     string
	Workers     int
}

type GameAPIConfig struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	hierarchy, err := LoadHierarchy(getEnv("HIERARCHY_CONFIG", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ExitWaitTimeout: getDurationEnv("SERVER_EXIT_WAIT_TIMEOUT", 5*time.Second),
			AllowOrigin:     getEnv("CORS_ALLOW_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("MAPAPYLIFE_DB_DSN", ""),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Channel:  getEnv("REDIS_CHANNEL", "mapapylife:zones:rebuilt"),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("RATE_LIMIT_ENABLED", true),
			Limit:   getIntEnv("RATE_LIMIT", 60),
			Period:  getDurationEnv("RATE_LIMIT_PERIOD", time.Minute),
		},
		Sources: SourcesConfig{
			DataDir:     getEnv("DATA_DIR", "./data"),
			CatalogFile: getEnv("ZONE_CATALOG_FILE", "zonenames.txt"),
			BlipsFile:   getEnv("BLIPS_FILE", "blips.txt"),
			MTAURL:      getEnv("MTA_ZONENAMES_URL", ""),
			MTAFile:     getEnv("MTA_ZONENAMES_FILE", ""),
			Workers:     getIntEnv("REBUILD_WORKERS", 4),
		},
		GameAPI: GameAPIConfig{
			BaseURL:   getEnv("PYLIFE_API_URL", ""),
			AuthToken: getEnv("AUTH_TOKEN", ""),
			Timeout:   getDurationEnv("PYLIFE_API_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Hierarchy: hierarchy,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, fmt.Errorf("%w: MAPAPYLIFE_DB_DSN is required", ErrInvalidConfig))
	}
	if c.Sources.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: REBUILD_WORKERS must be positive", ErrInvalidConfig))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit < 1 || c.RateLimit.Period <= 0) {
		errs = append(errs, fmt.Errorf("%w: RATE_LIMIT and RATE_LIMIT_PERIOD must be positive", ErrInvalidConfig))
	}
	if _, ok := logLevels[strings.ToLower(c.Logging.Level)]; !ok {
		errs = append(errs, fmt.Errorf("%w: unknown LOG_LEVEL %q", ErrInvalidConfig, c.Logging.Level))
	}
	if err := c.Hierarchy.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type levels struct {
	hertz hlog.Level
	gorm  logger.LogLevel
}

var logLevels = map[string]levels{
	"debug": {hlog.LevelDebug, logger.Info},
	"info":  {hlog.LevelInfo, logger.Warn},
	"warn":  {hlog.LevelWarn, logger.Warn},
	"error": {hlog.LevelError, logger.Error},
}

// ApplyLogLevel sets the process-wide hlog level.
func (c LoggingConfig) ApplyLogLevel() {
	hlog.SetLevel(c.HertzLevel())
}

func (c LoggingConfig) HertzLevel() hlog.Level {
	if l, ok := logLevels[strings.ToLower(c.Level)]; ok {
		return l.hertz
	}
	return hlog.LevelInfo
}

func (c LoggingConfig) GormLevel() logger.LogLevel {
	if l, ok := logLevels[strings.ToLower(c.Level)]; ok {
		return l.gorm
	}
	return logger.Warn
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		hlog.Warnf("invalid integer value for %s: %s, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		hlog.Warnf("invalid duration value for %s: %s, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		hlog.Warnf("invalid boolean value for %s: %s, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
