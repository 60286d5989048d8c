package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Queue QueueConfig
	SMTP  SMTPConfig
	JWT   JWTConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	DefaultTTL time.Duration
}

type QueueConfig struct {
	URL       string
	QueueName string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// AuthConfig points the schedule service at the identity service that
// holds the signing secret.
type AuthConfig struct {
	ServiceURL     string
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = time.Hour
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("CACHE_DEFAULT_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	authTimeout, err := time.ParseDuration(viper.GetString("AUTH_REQUEST_TIMEOUT"))
	if err != nil {
		authTimeout = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:       viper.GetString("REDIS_HOST"),
			Port:       viper.GetString("REDIS_PORT"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			DefaultTTL: cacheTTL,
		},
		Queue: QueueConfig{
			URL:       viper.GetString("RABBITMQ_URL"),
			QueueName: viper.GetString("RABBITMQ_QUEUE"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: jwtExpiry,
		},
		Auth: AuthConfig{
			ServiceURL:     viper.GetString("AUTH_SERVICE_URL"),
			RequestTimeout: authTimeout,
		},
	}

	if config.Queue.QueueName == "" {
		config.Queue.QueueName = "email-queue"
	}

	return config, nil
}

// ValidateForAuth ensures the identity service can sign credentials.
// A missing secret is fatal at startup, not a per-request error.
func (c *Config) ValidateForAuth() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not defined")
	}
	return nil
}

// ValidateForAPI ensures the schedule service knows where to delegate
// credential verification.
func (c *Config) ValidateForAPI() error {
	if c.Auth.ServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is not defined")
	}
	return nil
}
