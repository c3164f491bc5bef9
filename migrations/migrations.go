package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Действия мигратора
const (
	ActionUp   = "up"
	ActionDown = "down"
	ActionDrop = "drop"
)

// ErrUnknownAction неизвестное действие мигратора
var ErrUnknownAction = errors.New("migrations: unknown action")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Run применяет встроенные миграции к базе databaseURL (postgres://...).
// down откатывает одну миграцию, drop откатывает все.
func Run(databaseURL, action string, log Logger) error {
	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("migrations: open embedded source: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migrations: create migrate instance: %w", err)
	}
	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrations: up: %w", err)
		}
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrations: down: %w", err)
		}
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrations: drop: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrations: read version: %w", err)
	}
	log.Info("Migrations %s completed (version=%d, dirty=%t)", action, version, dirty)

	return nil
}
