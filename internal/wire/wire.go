// Package wire provides dependency injection for the CRM application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/crm/internal/adapters/cli"
	"github.com/example/crm/internal/adapters/filesystem"
	"github.com/example/crm/internal/adapters/sqlite"
	"github.com/example/crm/internal/app"
	"github.com/example/crm/internal/config"
	"github.com/example/crm/internal/db"
	"github.com/example/crm/internal/observability"
	"github.com/example/crm/internal/ports/primary"
	"github.com/example/crm/internal/ports/secondary"
)

var (
	clientService primary.ClientService
	logger        *slog.Logger
	once          sync.Once
)

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// Logger returns the configured structured logger.
func Logger() *slog.Logger {
	once.Do(initServices)
	return logger
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	baseDir, err := config.BaseDir()
	if err != nil {
		fatal(err)
	}

	cfg, err := config.LoadConfig(baseDir)
	if err != nil {
		fatal(err)
	}

	logger, err = observability.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fatal(fmt.Errorf("failed to configure logging: %w", err))
	}

	// Create the slot backend (secondary port) chosen by config
	slots, err := OpenSlotStore(cfg, baseDir)
	if err != nil {
		fatal(err)
	}
	logger.Debug("slot store ready",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.StoragePath(baseDir)),
	)

	store, err := app.OpenClientStore(context.Background(), slots, cfg.Storage.Slot, app.WithLogger(logger))
	if err != nil {
		fatal(fmt.Errorf("failed to open client store: %w", err))
	}

	// Create services (primary ports implementation)
	clientService = app.NewClientService(store, logger)
}

// OpenSlotStore builds the slot backend selected by cfg, resolving its
// location against baseDir.
func OpenSlotStore(cfg *config.Config, baseDir string) (secondary.SlotStore, error) {
	path := cfg.StoragePath(baseDir)

	switch cfg.Storage.Driver {
	case config.DriverFile:
		slotFile, err := filesystem.NewSlotFile(path)
		if err != nil {
			return nil, err
		}
		return slotFile, nil
	case config.DriverSQLite:
		database, err := OpenDatabase(cfg, baseDir)
		if err != nil {
			return nil, err
		}
		return sqlite.NewSlotRepository(database), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// OpenDatabase opens the SQLite database configured in cfg.
func OpenDatabase(cfg *config.Config, baseDir string) (*sql.DB, error) {
	database, err := db.Open(cfg.StoragePath(baseDir))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "crm: %v\n", err)
	os.Exit(1)
}

// ClientAdapter returns a new ClientAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ClientAdapter() *cliadapter.ClientAdapter {
	return ClientAdapterWithOutput(os.Stdout)
}

// ClientAdapterWithOutput returns a new ClientAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ClientAdapterWithOutput(out io.Writer) *cliadapter.ClientAdapter {
	once.Do(initServices)
	return cliadapter.NewClientAdapter(clientService, out)
}
