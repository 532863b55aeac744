package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"goflare.io/ember"
	emberConfig "goflare.io/ember/config"
	"goflare.io/ignite"
	"goride.io/booking/driver"
)

const (
	ServerStartPort = ":8080"

	DefaultCurrency      = "eur"
	DefaultLocale        = "fr"
	DefaultCaptureMethod = "automatic"
)

// ErrMissingStripeKey blocks startup when the processor secret is absent.
// The booking flow fails closed rather than degrading into a broken checkout.
var ErrMissingStripeKey = errors.New("stripe secret key is not configured")

type Config struct {
	Server   ServerConfig
	Stripe   StripeConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Currency      string `mapstructure:"currency"`
	Locale        string `mapstructure:"locale"`
	CaptureMethod string `mapstructure:"capture_method"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

func ProvideApplicationConfig() (*Config, error) {

	viper.SetConfigFile("./config.yaml")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Stripe.SecretKey == "" {
		return nil, ErrMissingStripeKey
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ServerStartPort
	}
	if config.Stripe.Currency == "" {
		config.Stripe.Currency = DefaultCurrency
	}
	if config.Stripe.Locale == "" {
		config.Stripe.Locale = DefaultLocale
	}
	if config.Stripe.CaptureMethod == "" {
		config.Stripe.CaptureMethod = DefaultCaptureMethod
	}

	return &config, nil
}

func ProvidePostgresConn(appConfig *Config) (driver.PostgresPool, error) {

	conn, err := driver.ConnectSQL(appConfig.Postgres.URL)
	if err != nil {
		return nil, err
	}

	return conn.Pool, nil
}

func ProvideEmber(appConfig *Config) (*ember.MultiCache, error) {

	conn, err := driver.ConnectRedis(appConfig.Redis.Addr, appConfig.Redis.Password, 0)
	if err != nil {
		return nil, err
	}

	config := emberConfig.NewConfig()
	cache, err := ember.NewMultiCache(context.Background(), &config, conn)
	if err != nil {
		log.Println(fmt.Errorf("failed to create cache: %w", err))
		return nil, err
	}

	return cache, nil
}

func ProvideIgnite() ignite.Manager {
	return ignite.NewManager()
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
