package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SALON_DATABASE_PASSWORD
const EnvPrefix = "SALON"

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Report    ReportConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// IsProduction reports whether the app runs in production
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string // silent, error, warn, info
	SlowThreshold   time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds the settings used to verify access tokens
// issued by the hosted auth backend
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// ReportConfig holds the dashboard computation defaults.
// Rates are percentages in [0, 100].
type ReportConfig struct {
	DirectRate      float64
	OperationalRate float64
	CommissionRate  float64
	TaxRate         float64
	TrendWindow     int
	Timezone        string
	CacheEnabled    bool
	CacheTTL        time.Duration
}

// TelemetryConfig holds OpenTelemetry tracing settings.
// An empty CollectorEndpoint keeps spans local, which still gives
// every log line a trace ID.
type TelemetryConfig struct {
	Enabled           bool
	ServiceName       string
	CollectorEndpoint string
	SamplingRatio     float64
	Insecure          bool
	DBTracing         bool
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	LogsEnabled       bool
}

// Location resolves Timezone, defaulting to UTC
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(r.Timezone)
}

// Load reads configuration with this priority (highest first):
//  1. SALON_-prefixed environment variables
//  2. config.toml in ".", "./backend" or "/app"
//  3. built-in defaults
func Load() (*Config, error) {
	return LoadFrom(".", "./backend", "/app")
}

// LoadFrom is Load with explicit config.toml search paths
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt.secret"),
			Issuer:   v.GetString("jwt.issuer"),
			Audience: v.GetString("jwt.audience"),
			Leeway:   v.GetDuration("jwt.leeway"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Report: ReportConfig{
			DirectRate:      v.GetFloat64("report.direct_rate"),
			OperationalRate: v.GetFloat64("report.operational_rate"),
			CommissionRate:  v.GetFloat64("report.commission_rate"),
			TaxRate:         v.GetFloat64("report.tax_rate"),
			TrendWindow:     v.GetInt("report.trend_window"),
			Timezone:        v.GetString("report.timezone"),
			CacheEnabled:    v.GetBool("report.cache_enabled"),
			CacheTTL:        v.GetDuration("report.cache_ttl"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			ServiceName:       v.GetString("telemetry.service_name"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTracing:         v.GetBool("telemetry.db_tracing"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "salon-finance")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "salon")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("jwt.leeway", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.max_body_size", 1<<20)

	v.SetDefault("report.direct_rate", 25)
	v.SetDefault("report.operational_rate", 15)
	v.SetDefault("report.commission_rate", 10)
	v.SetDefault("report.tax_rate", 8)
	v.SetDefault("report.trend_window", 6)
	v.SetDefault("report.timezone", "UTC")
	v.SetDefault("report.cache_enabled", true)
	v.SetDefault("report.cache_ttl", 10*time.Minute)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "salon-finance")
	v.SetDefault("telemetry.sampling_ratio", 1.0)
	v.SetDefault("telemetry.insecure", true)
	v.SetDefault("telemetry.db_tracing", true)
	v.SetDefault("telemetry.metrics_enabled", false)
	v.SetDefault("telemetry.metrics_interval", time.Minute)
	v.SetDefault("telemetry.logs_enabled", false)
}

func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) must be between 0 and database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	rates := map[string]float64{
		"report.direct_rate":      c.Report.DirectRate,
		"report.operational_rate": c.Report.OperationalRate,
		"report.commission_rate":  c.Report.CommissionRate,
		"report.tax_rate":         c.Report.TaxRate,
	}
	for key, rate := range rates {
		if rate < 0 || rate > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", key, rate)
		}
	}
	if c.Report.TrendWindow < 1 || c.Report.TrendWindow > 24 {
		return fmt.Errorf("report.trend_window must be between 1 and 24, got %d", c.Report.TrendWindow)
	}
	if _, err := c.Report.Location(); err != nil {
		return fmt.Errorf("report.timezone: %w", err)
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1, got %v", c.Telemetry.SamplingRatio)
	}

	if c.App.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("http.cors_allow_origins cannot be '*' in production")
			}
		}
	}
	return nil
}

// DSN returns the postgres connection URL with escaped credentials
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
