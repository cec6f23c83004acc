package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration, shared by the coach CLI and
// the coachd service.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Server   ServerConfig   `mapstructure:"server"`
	Identity IdentityConfig `mapstructure:"identity"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Product  ProductConfig  `mapstructure:"product"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig points the client at the coach service.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LLMConfig holds the LLM configuration for the coach service.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// ServerConfig holds the coachd listen address.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// IdentityConfig supplies the signed-in user facts to the client.
type IdentityConfig struct {
	UserID string `mapstructure:"user_id"`
	Name   string `mapstructure:"name"`
}

// ArchiveConfig holds the local transcript database location.
type ArchiveConfig struct {
	Path string `mapstructure:"path"`
}

// ProductConfig locates the product metadata used for prompts and guardrails.
type ProductConfig struct {
	MetadataPath string `mapstructure:"metadata_path"`
}

// LogConfig holds the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration from config.yaml in the working directory, or
// from the file named by the CONFIG_PATH environment variable when set.
func Load() (*Config, error) {
	v := viper.New()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
