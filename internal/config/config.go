package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	AvatarStoreDisk       = "disk"
	AvatarStoreCloudinary = "cloudinary"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	TokenTTLMinutes             int `toml:"token_ttl_minutes"`
	SessionsCleanupIntervalMins int `toml:"sessions_cleanup_interval_mins"`
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`

	// cors
	AllowedOrigins []string `toml:"allowed_origins"`

	// coach ai
	OpenAIBaseURL        string `toml:"openai_base_url"`
	OpenAIModel          string `toml:"openai_model"`
	OpenAITimeoutSeconds int    `toml:"openai_timeout_seconds"`
	TipsCacheSizeMB      int    `toml:"tips_cache_size_mb"`
	TipsCacheTTLMinutes  int    `toml:"tips_cache_ttl_minutes"`

	// avatars
	AvatarStore      string `toml:"avatar_store"`
	UploadsDir       string `toml:"uploads_dir"`
	CloudinaryFolder string `toml:"cloudinary_folder"`

	// contact
	SMTPHost                      string `toml:"smtp_host"`
	SMTPPort                      int    `toml:"smtp_port"`
	ContactRateLimitAllowedPerMin int    `toml:"contact_rate_limit_allowed_per_min"`

	// geoip
	IpInfoBaseURL string `toml:"ipinfo_base_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the section for the given environment,
// with defaults applied for the unset values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.TokenTTLMinutes == 0 {
		c.TokenTTLMinutes = 30
	}
	if c.SessionsCleanupIntervalMins == 0 {
		c.SessionsCleanupIntervalMins = 60
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.ContactRateLimitAllowedPerMin == 0 {
		c.ContactRateLimitAllowedPerMin = 3
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4o-mini"
	}
	if c.OpenAITimeoutSeconds == 0 {
		c.OpenAITimeoutSeconds = 60
	}
	if c.TipsCacheSizeMB == 0 {
		c.TipsCacheSizeMB = 10
	}
	if c.TipsCacheTTLMinutes == 0 {
		c.TipsCacheTTLMinutes = 60
	}
	if c.AvatarStore == "" {
		c.AvatarStore = AvatarStoreDisk
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "./uploads"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return errors.New("postgres host and db name must be set")
	}
	switch c.AvatarStore {
	case AvatarStoreDisk, AvatarStoreCloudinary:
	default:
		return fmt.Errorf("unknown avatar store: %s", c.AvatarStore)
	}
	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *Config) SessionsCleanupInterval() time.Duration {
	return time.Duration(c.SessionsCleanupIntervalMins) * time.Minute
}

func (c *Config) TipsCacheTTL() time.Duration {
	return time.Duration(c.TipsCacheTTLMinutes) * time.Minute
}

func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAITimeoutSeconds) * time.Second
}

// Secrets are never kept in the TOML file, they come from the environment (or a .env file).
type Secrets struct {
	PostgresPassword string `env:"AITRAINER_DB_PASSWORD"`
	RedisPassword    string `env:"AITRAINER_REDIS_PASS"`
	JWTSecret        string `env:"AITRAINER_JWT_SECRET, required"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	SMTPEmail        string `env:"SMTP_EMAIL"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	IpInfoAPIKey     string `env:"IP_INFO_API_KEY"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
