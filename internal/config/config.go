package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	DefaultPath = "config.yaml"
)

var (
	ErrUnknownDriver   = errors.New("config: unknown database driver")
	ErrMissingSecret   = errors.New("config: jwt secret is required")
	ErrInvalidTimezone = errors.New("config: invalid stats timezone")
	ErrMissingDBPath   = errors.New("config: sqlite driver needs database.path")
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	MQ        MQConfig        `yaml:"mq"`
	Log       LogConfig       `yaml:"log"`
	Stats     StatsConfig     `yaml:"stats"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverSQLite:
		return "file:" + c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	case DriverPgx, DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     c.Name,
			RawQuery: "sslmode=" + c.SSLMode,
		}
		return u.String()
	default:
		return ""
	}
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a redis server is configured at all.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	TTL    time.Duration `yaml:"ttl"`
}

type MQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StatsConfig struct {
	Timezone  string `yaml:"timezone"`
	QueueSize int    `yaml:"queue_size"`
}

// Location resolves the timezone that defines "today". Call after Validate.
func (c StatsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RateLimitConfig struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverPgx,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Port: "6379",
		},
		JWT: JWTConfig{
			Issuer: "kanso-habits",
			TTL:    24 * time.Hour,
		},
		MQ: MQConfig{
			Exchange: "kanso.events",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Stats: StatsConfig{
			Timezone:  "UTC",
			QueueSize: 100,
		},
		RateLimit: RateLimitConfig{
			Limit:  100,
			Window: time.Minute,
		},
	}
}

// Load reads .env, then the YAML file named by KANSO_CONFIG, then the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("KANSO_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load without the .env step. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPgx, DriverPostgres, DriverMemory:
	case DriverSQLite:
		if c.Database.Path == "" {
			return ErrMissingDBPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}

	if _, err := time.LoadLocation(c.Stats.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Stats.Timezone)
	}

	return nil
}

func (c *Config) overrideFromEnv() {
	overrideString(&c.Server.Port, "PORT")

	overrideString(&c.Database.Driver, "DB_DRIVER")
	overrideString(&c.Database.Host, "DB_HOST")
	overrideInt(&c.Database.Port, "DB_PORT")
	overrideString(&c.Database.User, "DB_USER")
	overrideString(&c.Database.Password, "DB_PASSWORD")
	overrideString(&c.Database.Name, "DB_NAME")
	overrideString(&c.Database.Path, "DB_PATH")

	overrideString(&c.Redis.Host, "REDIS_HOST")
	overrideString(&c.Redis.Port, "REDIS_PORT")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")

	overrideString(&c.JWT.Secret, "JWT_SECRET")
	overrideString(&c.MQ.URL, "MQ_URL")

	overrideString(&c.Log.Level, "LOG_LEVEL")
	overrideString(&c.Log.Format, "LOG_FORMAT")
	overrideString(&c.Stats.Timezone, "STATS_TIMEZONE")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
