package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Version     string
	Environment string
	HTTP        HTTPConfig
	CORS        CORSConfig
	Store       StoreConfig
	Journal     JournalConfig
	Monitor     MonitorConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StoreConfig struct {
	IDStrategy string
	Seed       bool
}

type JournalConfig struct {
	Enabled       bool
	Path          string
	Retention     time.Duration
	PruneInterval time.Duration
}

type MonitorConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "boilerplate-api"),
		Version:     getString("APP_VERSION", "1.0.0"),
		Environment: getString("APP_ENV", EnvDevelopment),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "3001"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxBodyBytes: getInt("SERVER_MAX_BODY_BYTES", 10<<20),
		},
		Store: StoreConfig{
			IDStrategy: getString("ID_STRATEGY", "sequence"),
			Seed:       getBool("SEED_DATA", true),
		},
		Journal: JournalConfig{
			Enabled:       getBool("JOURNAL_ENABLED", true),
			Path:          getString("JOURNAL_PATH", "./data/journal.db"),
			Retention:     time.Duration(getInt("JOURNAL_RETENTION_HOURS", 24)) * time.Hour,
			PruneInterval: getDuration("JOURNAL_PRUNE_INTERVAL", 10*time.Minute),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 10*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	cfg.CORS.AllowedOrigins = allowedOrigins(cfg.Environment)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.IDStrategy {
	case "sequence", "uuid":
	default:
		return fmt.Errorf("config: ID_STRATEGY must be sequence or uuid, got %q", c.Store.IDStrategy)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("config: JOURNAL_PATH is required when the journal is enabled")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: SERVER_MAX_BODY_BYTES must be positive")
	}
	return nil
}

// allowedOrigins mirrors the front end's dev servers outside production and
// only FRONTEND_URL in production. CORS_ORIGINS overrides both.
func allowedOrigins(env string) []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return splitList(raw)
	}
	if env == EnvProduction {
		if url := os.Getenv("FRONTEND_URL"); url != "" {
			return []string{url}
		}
		return nil
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
