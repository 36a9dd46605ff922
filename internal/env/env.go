package env

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppEnv string

const (
	EnvDevelopment AppEnv = "development"
	EnvProduction  AppEnv = "production"
)

func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	log.Println("Environment variables loaded ✨")
}

func GetString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("warning: env %s must be integer but got '%s', using fallback %d", key, val, fallback)
			return fallback
		}
		return i
	}
	return fallback
}

// GetBool รับค่าแบบที่ strconv.ParseBool รู้จัก (1, t, true, 0, f, false ...)
func GetBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			log.Printf("warning: env %s must be boolean but got '%s', using fallback %t", key, val, fallback)
			return fallback
		}
		return b
	}
	return fallback
}

// GetDuration เช่น "30s", "2m"
func GetDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("warning: env %s must be duration but got '%s', using fallback %s", key, val, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func Current() AppEnv {
	return AppEnv(GetString("APP_ENV", string(EnvDevelopment)))
}
