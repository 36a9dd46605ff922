package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nasaee/todo-crud-api/internal/health"
	"github.com/Nasaee/todo-crud-api/internal/metrics"
	"github.com/Nasaee/todo-crud-api/internal/todo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

type application struct {
	config      config
	todoService todo.Service
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL}, // origin ของ frontend
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // cache preflight 5 นาที
	}))

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer) // recover from panics or crashes
	r.Use(app.metrics.Middleware)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(app.config.requestTimeout))

	healthHandler := health.NewHandler(app.todoService, app.config.store.driver)
	todoHandler := todo.NewHandler(app.todoService)

	r.Get("/", healthHandler.Ping)
	r.Get("/healthz", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	r.Mount("/todos", todoHandler.Routes())

	return r
}

/*
	Graceful shutdown:
	1. รัน ListenAndServe() ใน goroutine
	2. รอ signal (SIGINT / SIGTERM) หรือ ctx ถูก cancel
	3. srv.Shutdown(ctx): เลิกรับ request ใหม่ ปล่อย request ที่ค้างอยู่ให้จบภายใน shutdownTimeout
*/

func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	// channel ไว้รับ error จาก ListenAndServe
	errCh := make(chan error, 1)

	// รัน server ใน goroutine
	go func() {
		slog.Info("starting server", "addr", app.config.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// รอ signal จาก OS หรือ ctx ถูก cancel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server...")
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		// ถ้า server ตายเองก่อน (เช่น listen พัง) → คืน error กลับไปเลย
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
