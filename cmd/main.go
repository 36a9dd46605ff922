package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Nasaee/todo-crud-api/internal/env"
	"github.com/Nasaee/todo-crud-api/internal/metrics"
	"github.com/Nasaee/todo-crud-api/internal/todo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	env.Init()

	// base context (อนาคตถ้าจะทำ cancel เองก็ทำจากตรงนี้ได้)
	ctx := context.Background()

	cfg := loadConfig()

	// Logger
	logger := newLogger(env.AppEnv(cfg.appEnv))
	slog.SetDefault(logger)

	// store (source of truth เดียวของ process)
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.store.driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("store connected 🎉", "driver", cfg.store.driver)

	// services
	todoSvc := todo.NewService(repo)

	if cfg.seed {
		if err := todo.Seed(ctx, todoSvc); err != nil {
			slog.Error("failed to seed todos", "error", err)
			os.Exit(1)
		}
		logger.Info("demo todos seeded")
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api := application{
		config:      cfg,
		todoService: todoSvc,
		metrics:     metrics.New(reg),
		registry:    reg,
	}

	// ใช้ ctx + graceful shutdown
	if err := api.run(ctx, api.mount()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(appEnv env.AppEnv) *slog.Logger {
	if appEnv == env.EnvProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
