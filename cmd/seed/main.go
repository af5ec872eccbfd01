package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/database"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/logging"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/seed"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
)

func main() {
	ifEmpty := flag.Bool("if-empty", false, "skip seeding when the task collection already has documents")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	inserted, err := seed.Run(context.Background(), services.NewTaskService(db), *ifEmpty)
	if err != nil {
		slog.Error("seed failed", "inserted", inserted, "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed", "inserted", inserted)
}
