package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"

	"github.com/studycoach/studycoach/internal/config"
	"github.com/studycoach/studycoach/internal/database"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/schemas"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func migrateDatabase(db *sqlx.DB) error {
	return database.Migrate(db, schemas.Migrations)
}

// addUserFlag registers the shared --user flag.
func addUserFlag(flags *pflag.FlagSet, userID *string) {
	flags.StringVarP(userID, "user", "u", "default", "user the command acts for")
}

// todayFlag resolves the shared --today override, falling back to the
// current local date.
func todayFlag(value string) (dates.Date, error) {
	if value == "" {
		return dates.Today(), nil
	}
	return dates.Parse(value)
}
