package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/service"

	"github.com/gorilla/mux"
)

// SnapshotReader returns the whole current database.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (domain.Database, error)
}

// Services bundles what the API exposes.
type Services struct {
	Database    SnapshotReader
	Settings    service.SettingsService
	Clients     service.ClientService
	Equipment   service.EquipmentService
	Rentals     service.RentalService
	Maintenance service.MaintenanceService
	Backup      service.BackupService
	Location    *time.Location // business timezone for timestamps without offset
}

// maxBodySize caps JSON request bodies. Equipment images and the logo are
// inline base64.
const maxBodySize = 16 << 20

// NewRouter registers every API route.
func NewRouter(s Services) *mux.Router {
	if s.Location == nil {
		s.Location = time.Local
	}
	router := mux.NewRouter()
	router.Use(RequestLogging)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		Success(w, "ok", map[string]string{"status": "up"}, nil)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/database", func(w http.ResponseWriter, r *http.Request) {
		db, err := s.Database.Snapshot(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		Success(w, "Database retrieved", db, nil)
	}).Methods(http.MethodGet)

	RegisterSettingsRoutes(api, NewSettingsHandler(s.Settings))
	RegisterClientRoutes(api, NewClientHandler(s.Clients))
	RegisterEquipmentRoutes(api, NewEquipmentHandler(s.Equipment, s.Maintenance))
	RegisterRentalRoutes(api, NewRentalHandler(s.Rentals, s.Location))
	RegisterMaintenanceRoutes(api, NewMaintenanceHandler(s.Maintenance))
	RegisterBackupRoutes(api, NewBackupHandler(s.Backup))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, "Route not found", http.StatusNotFound, nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	})
	return router
}

func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
