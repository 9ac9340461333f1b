package Config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env:"APP_ENV" env-default:"prod"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"database.db"`
	Address     string `yaml:"address" env:"LISTEN_ADDR" env-default:":3001"`
	JWTSecret   string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"secret"`
	PhotoDir    string `yaml:"photo_dir" env:"PHOTO_DIR" env-default:"JobPhotos"`

	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:"manager@shop.local"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD" env-default:"changeme"`
}

// MustConfig loads config/local.yaml (or CONFIG_PATH) and falls back to
// environment defaults when the file is missing.
func MustConfig() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read environment config: %s", err)
	}
	return &cfg
}
