package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	BCH      *BCHConfig      `mapstructure:"bch"`
	Rates    *RatesConfig    `mapstructure:"rates"`
	Email    *EmailConfig    `mapstructure:"email"`
}

type APIConfig struct {
	Environment        string `mapstructure:"environment"`
	BaseURL            string `mapstructure:"base_url"`
	Port               string `mapstructure:"port"`
	JWTSigningKey      string `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// BCHConfig selects the network and holds the master signing key for
// payment-address derivation. The key is the only secret the payment flow
// needs; per-address private keys are derived from it on demand and never
// stored anywhere.
type BCHConfig struct {
	// Network is "chipnet" or "mainnet".
	Network string `mapstructure:"network"`
	// MasterKey is a BIP32 extended private key (xprv/tprv).
	MasterKey string `mapstructure:"master_key"`
	// RestURL is the base URL of the mainnet.cash REST gateway.
	RestURL string `mapstructure:"rest_url"`
	// DiscountPercent is the discount applied to USD prices paid in BCH.
	DiscountPercent float64 `mapstructure:"discount_percent"`
	// CashbackPercent of the received amount is returned as a CashStamp.
	CashbackPercent float64 `mapstructure:"cashback_percent"`
}

type RatesConfig struct {
	CoinGeckoAPIKey string  `mapstructure:"coingecko_api_key"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
	FallbackRate    float64 `mapstructure:"fallback_rate"`
}

type EmailConfig struct {
	MailerSendAPIKey string `mapstructure:"mailersend_api_key"`
	FromName         string `mapstructure:"from_name"`
	FromEmail        string `mapstructure:"from_email"`
}

func Load(configPath string) (*AppConfig, error) {
	conf := &AppConfig{}

	viper.SetConfigFile(configPath)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}
