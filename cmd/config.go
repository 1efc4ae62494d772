package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Change feed drivers.
const (
	FeedLocal    = "local"
	FeedRedis    = "redis"
	FeedPostgres = "postgres"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Feed     FeedConfig     `yaml:"feed"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Stats    StatsConfig    `yaml:"stats"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	// HeartbeatSeconds is the keep-alive interval of event streams.
	HeartbeatSeconds int `yaml:"heartbeat_seconds"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	// Transactional writes both documents of an assignment change in one
	// database transaction. Only the postgres driver supports it.
	Transactional         bool `yaml:"transactional"`
	ConnectTimeoutSeconds int  `yaml:"connect_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// DSN renders the connection URL used by both gorm and pgx.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type FeedConfig struct {
	Driver string `yaml:"driver"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	// Brokers enables the audit stream when not empty.
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type JobsConfig struct {
	ConsistencyScan string `yaml:"consistency_scan"`
	StatsWarmup     string `yaml:"stats_warmup"`
}

type StatsConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig runs everything in memory on port 8080.
func DefaultConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: "8080", HeartbeatSeconds: 15},
		Store:    StoreConfig{Driver: StoreMemory, ConnectTimeoutSeconds: 30},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "fleetops", SSLMode: "disable"},
		Feed:     FeedConfig{Driver: FeedLocal},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Kafka:    KafkaConfig{AuditTopic: "fleetops.audit"},
		Auth:     AuthConfig{Issuer: "fleetops"},
		Stats:    StatsConfig{TTLSeconds: 10},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file at
// path (skipped when path is empty), then a .env file in the working
// directory, then the process environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = splitList(v)
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("HTTP_PORT", &c.HTTP.Port)
	list("HTTP_ALLOW_ORIGINS", &c.HTTP.AllowOrigins)
	num("HTTP_HEARTBEAT_SECONDS", &c.HTTP.HeartbeatSeconds)
	str("STORE_DRIVER", &c.Store.Driver)
	flag("STORE_TRANSACTIONAL", &c.Store.Transactional)
	num("STORE_CONNECT_TIMEOUT_SECONDS", &c.Store.ConnectTimeoutSeconds)
	str("DB_HOST", &c.Database.Host)
	num("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	str("DB_SSLMODE", &c.Database.SSLMode)
	str("FEED_DRIVER", &c.Feed.Driver)
	str("REDIS_ADDR", &c.Redis.Addr)
	list("KAFKA_BROKERS", &c.Kafka.Brokers)
	str("KAFKA_AUDIT_TOPIC", &c.Kafka.AuditTopic)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("JWT_ISSUER", &c.Auth.Issuer)
	str("JOB_CONSISTENCY_SCAN", &c.Jobs.ConsistencyScan)
	str("JOB_STATS_WARMUP", &c.Jobs.StatsWarmup)
	num("STATS_TTL_SECONDS", &c.Stats.TTLSeconds)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

// Validate rejects unknown drivers and combinations that cannot work.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreMemory, StorePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	switch c.Feed.Driver {
	case FeedLocal, FeedRedis:
	case FeedPostgres:
		if c.Store.Driver != StorePostgres {
			errs = append(errs, errors.New("feed driver postgres requires store driver postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown feed driver %q", c.Feed.Driver))
	}

	if c.Store.Transactional && c.Store.Driver != StorePostgres {
		errs = append(errs, errors.New("transactional writes require store driver postgres"))
	}
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http port is required"))
	}

	return errors.Join(errs...)
}

// StatsTTL is how long dashboard stats are served from cache.
func (c Config) StatsTTL() time.Duration {
	return time.Duration(c.Stats.TTLSeconds) * time.Second
}

// ConnectTimeout bounds the startup wait for the database.
func (c Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Store.ConnectTimeoutSeconds) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
