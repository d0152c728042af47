package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
	"orgdirectory/backend/internal/commands"
	"orgdirectory/backend/internal/pkg/config"
	"orgdirectory/backend/internal/pkg/logger"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
	"orgdirectory/backend/internal/router"
)

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("loading config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, "org-directory-api")

	if err := run(cfg, log); err != nil {
		log.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting", slog.String("config", cfg.String()))

	db, err := postgresql.NewDB(ctx, postgresql.Config{DSN: cfg.DatabaseURL, Debug: cfg.DBDebug})
	if err != nil {
		return err
	}
	defer db.Close()

	if err = commands.MigrateUP(ctx, db); err != nil {
		return errors.Wrap(err, "migrating")
	}

	a, err := auth.New(cfg.JWTKey, cfg.TokenTTL)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.NewRouter(web.NewApp(log), db, cfg.Port, a, cfg.AllowedOrigins)
	r.Init()

	return r.Run(ctx)
}
