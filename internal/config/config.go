package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Clamd    ClamdConfig    `mapstructure:"clamd"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
}

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// StoreConfig 选择持久化后端以及键的命名空间。
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	Namespace  string `mapstructure:"namespace"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RedisRequired reports whether the process needs a redis connection.
func (c Config) RedisRequired() bool {
	return c.Redis.Enabled || c.Store.Driver == DriverRedis
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// AuthConfig 描述管理员账号与 JWT 密钥位置。
type AuthConfig struct {
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	PrivateKeyPath    string        `mapstructure:"private_key_path"`
	PublicKeyPath     string        `mapstructure:"public_key_path"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
	// LoginRateLimitPerHour caps attempts per IP and username; needs redis.
	LoginRateLimitPerHour int `mapstructure:"login_rate_limit_per_hour"`
}

// ClamdConfig points at a clamd daemon. An empty address disables scanning.
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

// EditorConfig controls list editing behaviour shared by every section.
type EditorConfig struct {
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// WorkerConfig contains snapshot worker settings.
type WorkerConfig struct {
	Concurrency    int  `mapstructure:"concurrency"`
	SnapshotOnSave bool `mapstructure:"snapshot_on_save"`
	SnapshotKeep   int  `mapstructure:"snapshot_keep"`
	MetricsPort    int  `mapstructure:"metrics_port"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.AllowedOrigins = splitOrigins(cfg.API.AllowedOrigins)
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.allowed_origins", []string{})
	v.SetDefault("api.max_upload_bytes", 5<<20)
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.namespace", "ast")
	v.SetDefault("store.sqlite_path", "portfolio.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portfolio")
	v.SetDefault("database.user", "portfolio")
	v.SetDefault("database.password", "portfolio")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.private_key_path", "keys/jwt_private.pem")
	v.SetDefault("auth.public_key_path", "keys/jwt_public.pem")
	v.SetDefault("auth.access_token_ttl", 2*time.Hour)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("editor.confirm_delete", true)
	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.snapshot_on_save", true)
	v.SetDefault("worker.snapshot_keep", 20)
	v.SetDefault("worker.metrics_port", 9091)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                       "API_PORT",
		"api.allowed_origins":            "API_ALLOWED_ORIGINS",
		"api.max_upload_bytes":           "API_MAX_UPLOAD_BYTES",
		"store.driver":                   "STORE_DRIVER",
		"store.namespace":                "STORE_NAMESPACE",
		"store.sqlite_path":              "STORE_SQLITE_PATH",
		"database.host":                  "DATABASE_HOST",
		"database.port":                  "DATABASE_PORT",
		"database.name":                  "POSTGRES_DB",
		"database.user":                  "POSTGRES_USER",
		"database.password":              "POSTGRES_PASSWORD",
		"database.sslmode":               "DATABASE_SSLMODE",
		"redis.host":                     "REDIS_HOST",
		"redis.port":                     "REDIS_PORT",
		"redis.password":                 "REDIS_PASSWORD",
		"redis.db":                       "REDIS_DB",
		"redis.enabled":                  "REDIS_ENABLED",
		"minio.enabled":                  "MINIO_ENABLED",
		"minio.endpoint":                 "MINIO_ENDPOINT",
		"minio.public_endpoint":          "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":            "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":        "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                  "MINIO_USE_SSL",
		"minio.bucket":                   "MINIO_BUCKET",
		"minio.region":                   "MINIO_REGION",
		"minio.bucket_lookup":            "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":       "MINIO_AUTO_CREATE_BUCKET",
		"auth.admin_username":            "ADMIN_USERNAME",
		"auth.admin_password_hash":       "ADMIN_PASSWORD_HASH",
		"auth.private_key_path":          "JWT_PRIVATE_KEY_PATH",
		"auth.public_key_path":           "JWT_PUBLIC_KEY_PATH",
		"auth.access_token_ttl":          "JWT_ACCESS_TOKEN_TTL",
		"auth.login_rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"clamd.addr":                     "CLAMD_ADDR",
		"editor.confirm_delete":          "EDITOR_CONFIRM_DELETE",
		"worker.concurrency":             "WORKER_CONCURRENCY",
		"worker.snapshot_on_save":        "WORKER_SNAPSHOT_ON_SAVE",
		"worker.snapshot_keep":           "WORKER_SNAPSHOT_KEEP",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

// viper 从环境变量读到的切片是单个逗号分隔字符串。
func splitOrigins(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if strings.TrimSpace(cfg.Store.Namespace) == "" {
		return errors.New("store namespace is required")
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.Store.SQLitePath == "" {
			return errors.New("sqlite path is required")
		}
	case DriverPostgres:
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	case DriverRedis:
		if err := validateRedis(cfg.Redis); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.RedisRequired() {
		if err := validateRedis(cfg.Redis); err != nil {
			return err
		}
	}
	if cfg.MinIO.Enabled {
		if err := validateMinIO(cfg.MinIO); err != nil {
			return err
		}
	}
	if cfg.API.MaxUploadBytes <= 0 {
		return errors.New("api max upload bytes must be positive")
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be positive")
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	if d.Host == "" {
		return errors.New("database host is required")
	}
	if d.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if d.Name == "" {
		return errors.New("database name is required")
	}
	if d.User == "" {
		return errors.New("database user is required")
	}
	if d.Password == "" {
		return errors.New("database password is required")
	}
	if d.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	return nil
}

func validateRedis(r RedisConfig) error {
	if r.Host == "" {
		return errors.New("redis host is required")
	}
	if r.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	return nil
}

func validateMinIO(m MinIOConfig) error {
	if m.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if m.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if m.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if m.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	return nil
}
