package service

import (
	"context"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/logger"
)

type equipmentService struct {
	ws *Workspace
}

func NewEquipmentService(ws *Workspace) EquipmentService {
	return &equipmentService{ws: ws}
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]EquipmentView, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]EquipmentView, 0, len(db.Equipment))
	for _, e := range db.Equipment {
		views = append(views, newEquipmentView(db, e))
	}
	return views, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int) (EquipmentView, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return EquipmentView{}, err
	}
	e, ok := db.FindEquipment(id)
	if !ok {
		return EquipmentView{}, &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return newEquipmentView(db, e), nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e.ID = 0
	return s.save(ctx, "CreateEquipment", e)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	if e.ID <= 0 {
		return domain.Equipment{}, &domain.NotFoundError{Entity: "equipment", ID: e.ID}
	}
	return s.save(ctx, "UpdateEquipment", e)
}

// save returns the item as persisted, with availableStock reconciled.
func (s *equipmentService) save(ctx context.Context, method string, e domain.Equipment) (domain.Equipment, error) {
	logger.EnterMethod("equipmentService."+method, "equipment_id", e.ID)

	var id int
	db, changed, err := s.ws.Apply(ctx, method, func(db domain.Database) (domain.Database, bool, error) {
		next, out, changed, err := lifecycle.SaveEquipment(db, e)
		id = out.ID
		return next, changed, err
	})
	if err == nil && !changed {
		err = &domain.NotFoundError{Entity: "equipment", ID: e.ID}
	}
	if err != nil {
		logger.ExitMethodWithError("equipmentService."+method, err)
		return domain.Equipment{}, err
	}

	saved, _ := db.FindEquipment(id)
	logger.ExitMethod("equipmentService."+method, "equipment_id", saved.ID, "available_stock", saved.AvailableStock)
	return saved, nil
}

// DeleteEquipment refuses while an active rental or open maintenance record
// still uses the item.
func (s *equipmentService) DeleteEquipment(ctx context.Context, id int) error {
	logger.EnterMethod("equipmentService.DeleteEquipment", "equipment_id", id)

	_, changed, err := s.ws.Apply(ctx, "DeleteEquipment", func(db domain.Database) (domain.Database, bool, error) {
		return lifecycle.DeleteEquipment(db, id)
	})
	if err == nil && !changed {
		err = &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	if err != nil {
		logger.ExitMethodWithError("equipmentService.DeleteEquipment", err)
		return err
	}

	logger.ExitMethod("equipmentService.DeleteEquipment")
	return nil
}
