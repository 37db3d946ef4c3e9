// Package bootstrap wires configuration, storage and services for the
// server and cronjob binaries.
package bootstrap

import (
	"context"
	"fmt"

	httpapi "equipment-rental-manager/internal/api/http"
	"equipment-rental-manager/internal/config"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/repository"
	"equipment-rental-manager/internal/repository/filestore"
	"equipment-rental-manager/internal/repository/postgres"
	"equipment-rental-manager/internal/service"
	"equipment-rental-manager/internal/storage"
)

// App holds the workspace and every service built on it.
type App struct {
	Workspace   *service.Workspace
	Settings    service.SettingsService
	Clients     service.ClientService
	Equipment   service.EquipmentService
	Rentals     service.RentalService
	Maintenance service.MaintenanceService
	Backup      service.BackupService

	closers []func() error
}

// New opens the configured document store and loads the database once so
// that start-up fails fast when no location is usable.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}
	store, err := app.openStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	ws := service.NewWorkspace(store, cfg.BusinessLocation())
	if _, err := ws.Snapshot(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.Workspace = ws
	app.Settings = service.NewSettingsService(ws)
	app.Clients = service.NewClientService(ws)
	app.Equipment = service.NewEquipmentService(ws)
	app.Rentals = service.NewRentalService(ws)
	app.Maintenance = service.NewMaintenanceService(ws)
	app.Backup = service.NewBackupService(ws)
	return app, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	switch cfg.Storage.Type {
	case "postgres":
		logger.Info("Using PostgreSQL document store", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewDocumentStore(db), nil
	case "file", "":
		sc := cfg.StorageSettings()
		for _, loc := range sc.Locations {
			logger.Info("Database file location", "name", loc.Name, "path", loc.Path)
		}
		return filestore.NewFileStore(storage.NewLocations(sc), sc.FileName), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %q", cfg.Storage.Type)
	}
}

// HTTPServices exposes the services to the HTTP router.
func (a *App) HTTPServices() httpapi.Services {
	return httpapi.Services{
		Database:    a.Workspace,
		Settings:    a.Settings,
		Clients:     a.Clients,
		Equipment:   a.Equipment,
		Rentals:     a.Rentals,
		Maintenance: a.Maintenance,
		Backup:      a.Backup,
		Location:    a.Workspace.Location(),
	}
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
