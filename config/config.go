package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig cấu hình chung của ứng dụng, nạp từ biến môi trường
type AppConfig struct {
	Env     string `envconfig:"ENV" default:"dev"`
	Port    string `envconfig:"PORT" default:"8083"`
	AmqpURL string `envconfig:"AMQP_URL"`
}

// LoadEnv nạp file .env nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// LoadAppConfig nạp AppConfig từ biến môi trường
func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}
