package service

import (
	"context"
	"io"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/utils"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

type ClientService interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id int) (domain.Client, error)
	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	DeleteClient(ctx context.Context, id int) error
}

type EquipmentService interface {
	ListEquipment(ctx context.Context) ([]EquipmentView, error)
	GetEquipment(ctx context.Context, id int) (EquipmentView, error)
	CreateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	UpdateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	DeleteEquipment(ctx context.Context, id int) error
}

type RentalService interface {
	ListRentals(ctx context.Context) ([]RentalView, error)
	ListOverdueRentals(ctx context.Context) ([]RentalView, error)
	GetRental(ctx context.Context, id int) (RentalView, error)
	QuoteRental(ctx context.Context, req lifecycle.RentalRequest) (utils.RentalCostBreakdown, error)
	CreateRental(ctx context.Context, req lifecycle.RentalRequest) (domain.Rental, error)
	ReturnRental(ctx context.Context, id int) (bool, error) // false when unknown or already returned
}

type MaintenanceService interface {
	ListMaintenance(ctx context.Context) ([]MaintenanceView, error)
	NewDraft(ctx context.Context, equipmentID int) (domain.MaintenanceDraft, error)
	CreateMaintenance(ctx context.Context, d domain.MaintenanceDraft) (domain.MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, id int, d domain.MaintenanceDraft) (domain.MaintenanceRecord, error)
	CompleteMaintenance(ctx context.Context, id int) (bool, error) // false when unknown or already completed
}

type BackupService interface {
	Export(ctx context.Context, w io.Writer) (int64, error)
	Import(ctx context.Context, r io.Reader) error
}
