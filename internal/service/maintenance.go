package service

import (
	"context"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/logger"
)

type maintenanceService struct {
	ws *Workspace
}

func NewMaintenanceService(ws *Workspace) MaintenanceService {
	return &maintenanceService{ws: ws}
}

func (s *maintenanceService) ListMaintenance(ctx context.Context) ([]MaintenanceView, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]MaintenanceView, 0, len(db.Maintenance))
	for _, m := range db.Maintenance {
		views = append(views, newMaintenanceView(db, m))
	}
	return views, nil
}

// NewDraft pre-fills the form for sending one item to maintenance.
func (s *maintenanceService) NewDraft(ctx context.Context, equipmentID int) (domain.MaintenanceDraft, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return domain.MaintenanceDraft{}, err
	}
	if _, ok := db.FindEquipment(equipmentID); !ok {
		return domain.MaintenanceDraft{}, &domain.NotFoundError{Entity: "equipment", ID: equipmentID}
	}
	return lifecycle.NewMaintenanceDraft(equipmentID, s.ws.Now()), nil
}

func (s *maintenanceService) CreateMaintenance(ctx context.Context, d domain.MaintenanceDraft) (domain.MaintenanceRecord, error) {
	logger.EnterMethod("maintenanceService.CreateMaintenance", "equipment_id", d.EquipmentID, "quantity", d.Quantity)

	var created domain.MaintenanceRecord
	_, _, err := s.ws.Apply(ctx, "CreateMaintenance", func(db domain.Database) (domain.Database, bool, error) {
		next, record, err := lifecycle.CreateMaintenance(db, d)
		created = record
		return next, err == nil, err
	})
	if err != nil {
		logger.ExitMethodWithError("maintenanceService.CreateMaintenance", err)
		return domain.MaintenanceRecord{}, err
	}

	logger.ExitMethod("maintenanceService.CreateMaintenance", "maintenance_id", created.ID)
	return created, nil
}

func (s *maintenanceService) UpdateMaintenance(ctx context.Context, id int, d domain.MaintenanceDraft) (domain.MaintenanceRecord, error) {
	logger.EnterMethod("maintenanceService.UpdateMaintenance", "maintenance_id", id, "quantity", d.Quantity, "status", d.Status)

	today := s.ws.Now()
	var updated domain.MaintenanceRecord
	_, changed, err := s.ws.Apply(ctx, "UpdateMaintenance", func(db domain.Database) (domain.Database, bool, error) {
		next, record, changed, err := lifecycle.UpdateMaintenance(db, id, d, today)
		updated = record
		return next, changed, err
	})
	if err == nil && !changed {
		err = &domain.NotFoundError{Entity: "maintenance", ID: id}
	}
	if err != nil {
		logger.ExitMethodWithError("maintenanceService.UpdateMaintenance", err)
		return domain.MaintenanceRecord{}, err
	}

	logger.ExitMethod("maintenanceService.UpdateMaintenance", "status", updated.Status)
	return updated, nil
}

// CompleteMaintenance closes the record with today's date. Completing an
// unknown or completed record is a successful no-op.
func (s *maintenanceService) CompleteMaintenance(ctx context.Context, id int) (bool, error) {
	logger.EnterMethod("maintenanceService.CompleteMaintenance", "maintenance_id", id)

	today := s.ws.Now()
	_, changed, err := s.ws.Apply(ctx, "CompleteMaintenance", func(db domain.Database) (domain.Database, bool, error) {
		next, changed := lifecycle.CompleteMaintenance(db, id, today)
		return next, changed, nil
	})
	if err != nil {
		logger.ExitMethodWithError("maintenanceService.CompleteMaintenance", err)
		return false, err
	}

	logger.ExitMethod("maintenanceService.CompleteMaintenance", "completed", changed)
	return changed, nil
}
