//go:build integration

package testutil

import (
	"context"
	"log"
	"os"

	"github.com/Gunvolt24/semfilms/internal/repo/postgres"
	"github.com/pressly/goose/v3"
)

// ApplyMigrationsGoose применяет встроенные миграции к базе по DSN (с логом goose в stdout).
func ApplyMigrationsGoose(dsn string) error {
	goose.SetLogger(log.New(os.Stdout, "", 0))
	return postgres.Migrate(context.Background(), dsn)
}
