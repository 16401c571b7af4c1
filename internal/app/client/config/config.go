package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".stockroom"
)

type Config struct {
	Env               string `mapstructure:"app_env"`
	ServerAddress     string `mapstructure:"server_address"`
	LogLevel          string `mapstructure:"log_level"`
	ConfigDir         string `mapstructure:"config_dir"`
	ClientIDPath      string `mapstructure:"client_id_path"`
	RefetchAfterWrite bool   `mapstructure:"refetch_after_write"`
	EnableTLS         bool   `mapstructure:"enable_tls"`
}

// MustLoad loads the client configuration from the environment.
func MustLoad() *Config {
	// The .env file is optional and looked up relative to the working directory.
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REFETCH_AFTER_WRITE", false)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Failed to create config directory: %v\n", err)
	}

	clientIDPath := filepath.Join(configDir, "client_id")

	config := &Config{
		Env:               viper.GetString("APP_ENV"),
		ServerAddress:     viper.GetString("SERVER_ADDRESS"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
		ConfigDir:         configDir,
		ClientIDPath:      clientIDPath,
		RefetchAfterWrite: viper.GetBool("REFETCH_AFTER_WRITE"),
		EnableTLS:         viper.GetBool("ENABLE_TLS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	return nil
}

// IsProd reports whether the client runs in the prod environment.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsDev reports whether the client runs in the dev environment.
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// IsLocal reports whether the client runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
