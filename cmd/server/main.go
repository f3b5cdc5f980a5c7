package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/semfilms/config"
	"github.com/Gunvolt24/semfilms/internal/app"
	"github.com/Gunvolt24/semfilms/internal/repo/postgres"
	"github.com/joho/godotenv"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations (postgres backend) before start")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if *migrate || *migrateOnly {
		if err := postgres.Migrate(context.Background(), cfg.Postgres.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "migrations: %v\n", err)
			os.Exit(1)
		}
		if *migrateOnly {
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "run: %v", err)
	}
}
