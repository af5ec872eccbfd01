package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/logging"
)

// web serves the pre-built frontend bundle and forwards /api/* to the API
// server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	index := filepath.Join(cfg.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		slog.Error("frontend bundle not found", "static_dir", cfg.StaticDir, "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))

	upstream := strings.TrimRight(cfg.APIUpstream, "/")
	app.All("/api/*", func(c *fiber.Ctx) error {
		if err := proxy.Do(c, upstream+c.OriginalURL()); err != nil {
			return err
		}
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	})

	app.Use(compress.New())
	app.Static("/", cfg.StaticDir)

	// Client-side routes fall back to the SPA entry point.
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("web server starting", "port", cfg.WebPort, "static_dir", cfg.StaticDir, "api_upstream", upstream)
		if err := app.Listen(":" + cfg.WebPort); err != nil {
			slog.Error("web server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	if err := app.Shutdown(); err != nil {
		slog.Error("web server shutdown error", "error", err)
	}
	slog.Info("web server stopped")
}
