package config

import (
	"log"
	"os"
)

type Config struct {
	Port  string
	WSURL string
}

func LoadConfig() *Config {
	return &Config{
		Port:  getEnv("PORT", "8765"),
		WSURL: getEnv("VIRTUALSIM_WS_URL", "ws://localhost:8765/ws"),
	}
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
		log.Printf("Environment variable %s not set, using default value: %s", key, defaultValue)
	}
	return value
}
