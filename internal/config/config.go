package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"stockroom/internal/domain/resource"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env       string
	Server    Server
	DB        DB
	Storage   Storage
	Resources Resources
	Logger    Logger
}

type Server struct {
	// RunAddress is the full listen address. When empty the server binds
	// ":" + Port.
	RunAddress string `env:"RUN_ADDRESS"`
	Port       int    `env:"PORT" envDefault:"8080"`
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

type Storage struct {
	// Path of the SQLite file. Selects the sqlite backend when set and no
	// DatabaseURI is configured.
	Path string `env:"STORAGE_PATH"`
}

type Resources struct {
	// Path of an optional YAML file overriding the built-in resource set.
	Path string `env:"RESOURCES_PATH"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("port", 8080)
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("migrations_path", "migrations")

	config := Config{
		Env: viper.GetString("app_env"),
		Server: Server{
			RunAddress: viper.GetString("run_address"),
			Port:       viper.GetInt("port"),
		},
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Storage:   Storage{Path: viper.GetString("storage_path")},
		Resources: Resources{Path: viper.GetString("resources_path")},
		Logger:    Logger{LogLevel: viper.GetString("log_level")},
	}

	return &config
}

// Addr returns the address the HTTP server listens on. RUN_ADDRESS wins
// verbatim when set; otherwise the PORT variable picks the port on all
// interfaces.
func (c *Config) Addr() string {
	if c.Server.RunAddress != "" {
		return c.Server.RunAddress
	}
	return fmt.Sprintf(":%d", c.Server.Port)
}

// LoadDefinitions reads a YAML file with a top-level "resources" list and
// returns the definitions it declares.
func LoadDefinitions(path string) ([]resource.Definition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read resources file: %w", err)
	}

	var defs []resource.Definition
	if err := v.UnmarshalKey("resources", &defs); err != nil {
		return nil, fmt.Errorf("parse resources file: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("resources file %s declares no resources", path)
	}
	return defs, nil
}
