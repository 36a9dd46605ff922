package main

import (
	"time"

	"github.com/Nasaee/todo-crud-api/internal/env"
)

const (
	driverPostgres = "postgres"
	driverGorm     = "gorm"
	driverRedis    = "redis"
	driverMemory   = "memory"
)

type dbConfig struct {
	dsn     string
	migrate bool
}

type redisConfig struct {
	addr string
	db   int
}

type storeConfig struct {
	driver string
	db     dbConfig
	redis  redisConfig
}

type config struct {
	addr            string
	appEnv          string
	frontendURL     string
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	seed            bool
	store           storeConfig
}

func loadConfig() config {
	return config{
		addr:            env.GetString("API_PORT", ":8000"),
		appEnv:          string(env.Current()),
		frontendURL:     env.GetString("FRONTEND_URL", "http://localhost:3000"),
		requestTimeout:  env.GetDuration("REQUEST_TIMEOUT", 60*time.Second),
		shutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		seed:            env.GetBool("SEED_TODOS", false),
		store: storeConfig{
			driver: env.GetString("STORE_DRIVER", driverPostgres),
			db: dbConfig{
				dsn:     env.GetString("GOOSE_DBSTRING", "host=localhost port=5433 user=postgres password=P@ssw0rd dbname=todos sslmode=disable"),
				migrate: env.GetBool("DB_MIGRATE", true),
			},
			redis: redisConfig{
				addr: env.GetString("REDIS_ADDR", "localhost:6379"),
				db:   env.GetInt("REDIS_DB", 0),
			},
		},
	}
}
