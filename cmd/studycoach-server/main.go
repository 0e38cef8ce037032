package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/config"
	"github.com/studycoach/studycoach/internal/database"
	"github.com/studycoach/studycoach/internal/focus"
	"github.com/studycoach/studycoach/internal/reminders"
	"github.com/studycoach/studycoach/internal/review"
	"github.com/studycoach/studycoach/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	var scheduler reminders.Scheduler
	if cfg.Reminders.ServiceURL != "" {
		client := reminders.NewClient(cfg.Reminders.ServiceURL, cfg.Reminders.APIKey, cfg.Reminders.MaxAttempts)
		defer func() {
			_ = client.Close()
		}()
		scheduler = client
	} else {
		slog.Warn("no reminder service configured, reminders are disabled")
	}

	handler := server.NewHandler(
		cfg,
		assignment.NewDBRepository(db),
		focus.NewDBSessionRepository(db),
		focus.NewDBRecordRepository(db),
		review.NewDBRepository(db),
		scheduler,
	)

	slog.Info("starting server", "addr", *addr)
	return http.ListenAndServe(*addr, corsMiddleware(h2c.NewHandler(handler.Routes(), &http2.Server{})))
}

func loadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("STUDYCOACH_CONFIG"))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
