// internal/config/config.go
package config

import (
	"strings"

	"github.com/spf13/viper"

	"repo-miner/internal/auth"
)

// Config holds all configuration for the application. The GitHub token is
// deliberately absent here: it is resolved through the explicit credential
// chain returned by CredentialChain.
type Config struct {
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	GithubAPIURL string `mapstructure:"GITHUB_API_URL"`
	DotenvPath   string `mapstructure:"DOTENV_PATH"`
	HTTPAddr     string `mapstructure:"HTTP_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GITHUB_API_URL", "")
	viper.SetDefault("DOTENV_PATH", ".env")
	viper.SetDefault("HTTP_ADDR", ":8080")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CredentialChain returns the ordered list of credential providers: the
// dotenv file first, then the process environment. First success wins.
func (c *Config) CredentialChain() []auth.Provider {
	return []auth.Provider{
		auth.DotenvProvider{Path: c.DotenvPath},
		auth.EnvProvider{Var: auth.TokenKey},
	}
}
