// Package config loads client configuration from the environment, with an
// optional storefront.yaml alongside the binary for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the storefront client needs to talk to the backend
// and the payment gateway.
type Config struct {
	// BaseURL is the root of the store's REST API.
	BaseURL string `mapstructure:"base_url"`
	// Currency is the ISO code sent with payment intents.
	Currency string `mapstructure:"currency"`
	// RequestTimeout bounds ordinary backend calls.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// OrderSaveTimeout bounds the order-save call specifically. An
	// indefinite hang there is indistinguishable from a captured-but-
	// unrecorded payment, so it gets its own, tighter deadline.
	OrderSaveTimeout time.Duration `mapstructure:"order_save_timeout"`
	// JWTSecret verifies the session token the auth collaborator issued.
	JWTSecret string `mapstructure:"jwt_secret"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads storefront.yaml if present and overlays STOREFRONT_* environment
// variables on top.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("currency", "lkr")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("order_save_timeout", 15*time.Second)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
