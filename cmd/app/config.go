package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/quillpost/internal/common"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	DB        dbConfig        `mapstructure:",squash"`
	Auth      authConfig      `mapstructure:",squash"`
	Storage   storageConfig   `mapstructure:",squash"`
	Gemini    geminiConfig    `mapstructure:",squash"`
	Mail      mailConfig      `mapstructure:",squash"`
	RabbitMQ  rabbitMQConfig  `mapstructure:",squash"`
	RateLimit rateLimitConfig `mapstructure:",squash"`

	OverviewCacheTTL time.Duration `mapstructure:"OVERVIEW_CACHE_TTL"`
	OTLPEndpoint     string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type dbConfig struct {
	Host           string        `mapstructure:"POSTGRES_HOST"`
	Port           string        `mapstructure:"POSTGRES_PORT"`
	User           string        `mapstructure:"POSTGRES_USER"`
	Password       string        `mapstructure:"POSTGRES_PASSWORD"`
	Name           string        `mapstructure:"POSTGRES_DB"`
	SSLMode        string        `mapstructure:"POSTGRES_SSLMODE"`
	MaxOpenConns   int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns   int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	MaxIdleTime    time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
}

type authConfig struct {
	JWTSecret string `mapstructure:"AUTH_JWT_SECRET"`
	Issuer    string `mapstructure:"AUTH_ISSUER"`
}

type storageConfig struct {
	Endpoint  string `mapstructure:"S3_ENDPOINT"`
	AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	SecretKey string `mapstructure:"S3_SECRET_KEY"`
	Bucket    string `mapstructure:"S3_BUCKET"`
	UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	PublicURL string `mapstructure:"S3_PUBLIC_URL"`
}

type geminiConfig struct {
	APIKey string `mapstructure:"GEMINI_API_KEY"`
	Model  string `mapstructure:"GEMINI_MODEL"`
}

type mailConfig struct {
	Host     string `mapstructure:"MAIL_HOST"`
	Port     int    `mapstructure:"MAIL_PORT"`
	User     string `mapstructure:"MAIL_USER"`
	Password string `mapstructure:"MAIL_PASSWORD"`
	Sender   string `mapstructure:"MAIL_SENDER"`
}

type rabbitMQConfig struct {
	Host     string `mapstructure:"RABBITMQ_HOST"`
	Port     string `mapstructure:"RABBITMQ_PORT"`
	User     string `mapstructure:"RABBITMQ_USER"`
	Password string `mapstructure:"RABBITMQ_PASSWORD"`
}

type rateLimitConfig struct {
	RPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	Burst   int     `mapstructure:"RATE_LIMIT_BURST"`
	Enabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
}

func (c dbConfig) common() common.DBConfig {
	return common.DBConfig{
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		Name:         c.Name,
		SSLMode:      c.SSLMode,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
		MaxIdleTime:  c.MaxIdleTime,
	}
}

func (c storageConfig) common() common.StorageConfig {
	return common.StorageConfig{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Bucket:    c.Bucket,
		UseSSL:    c.UseSSL,
		PublicURL: c.PublicURL,
	}
}

func (c rabbitMQConfig) URI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Password, c.Host, c.Port)
}

func (c rabbitMQConfig) enabled() bool {
	return c.Host != ""
}

func (c mailConfig) enabled() bool {
	return c.Host != "" && c.Sender != ""
}

func (c *Config) addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) isDevelopment() bool {
	return c.Environment == "development"
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("PORT", "4000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_TIME", "15m")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("S3_BUCKET", "quillpost")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro-latest")
	v.SetDefault("RABBITMQ_PORT", "5672")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("RATE_LIMIT_RPS", 2)
	v.SetDefault("RATE_LIMIT_BURST", 4)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("OVERVIEW_CACHE_TTL", "5m")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
