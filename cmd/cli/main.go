package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oneapp-labs/waitlist-api/config"
	"github.com/oneapp-labs/waitlist-api/internal/log"
	"github.com/oneapp-labs/waitlist-api/pkg/migrations"
	"github.com/oneapp-labs/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		db, cleanup := mustOpenDatabase(logger)
		defer cleanup()

		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Failed to get SQL DB instance for migration", "error", err.Error())
			os.Exit(1)
		}

		migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := migrations.Up(ctx, sqlDB, migrations.Config{Dir: migrationsDir, Logger: logger}); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}

		logger.Info("Database migrations completed")
		return

	case "stats":
		db, cleanup := mustOpenDatabase(logger)
		defer cleanup()

		if err := PrintWaitlistStats(context.Background(), db); err != nil {
			logger.Error("Failed to compute waitlist stats", "error", err.Error())
			os.Exit(1)
		}
		return

	case "export":
		db, cleanup := mustOpenDatabase(logger)
		defer cleanup()

		out := os.Stdout
		if len(args) > 1 {
			f, err := os.Create(args[1])
			if err != nil {
				logger.Error("Failed to create export file", "path", args[1], "error", err.Error())
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		if err := ExportEntrantsCSV(context.Background(), db, out); err != nil {
			logger.Error("Failed to export entrants", "error", err.Error())
			os.Exit(1)
		}
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func mustOpenDatabase(logger *log.Logger) (*gorm.DB, func()) {
	dbCfg := &config.DBConfig{}
	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err.Error())
		os.Exit(1)
	}

	cleanup := func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB", "error", err.Error())
		}
	}

	return db, cleanup
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate         Run database migrations and exit")
	fmt.Println("  stats           Print waitlist signup statistics")
	fmt.Println("  export [file]   Export all entrants as CSV (stdout when no file given)")
}
