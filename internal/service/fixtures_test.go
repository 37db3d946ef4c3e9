package service_test

import (
	"testing"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/service"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture: one client, a drill (stock 5) with 2 units in maintenance, a saw
// (stock 2), one active rental that is overdue on fixedNow.
func fixture() domain.Database {
	db := domain.NewDatabase()
	db.Settings.Language = domain.LanguageEnglish
	db.Settings.NextInvoiceNumber = 1005
	db.Clients = []domain.Client{{ID: 1, Name: "Ana", Phone: "555-0101"}}
	db.Equipment = []domain.Equipment{
		{ID: 1, Name: "Drill", PricePerHour: decimal.NewFromInt(10), PricePerDay: decimal.NewFromInt(50), Stock: 5, AvailableStock: 5},
		{ID: 2, Name: "Saw", PricePerHour: decimal.NewFromInt(4), PricePerDay: decimal.NewFromInt(20), Stock: 2, AvailableStock: 2},
	}
	db.Rentals = []domain.Rental{{
		ID: 1, Folio: 1004, ClientID: 1, RentalType: domain.RentalTypeDay,
		StartDate:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive,
		Total:      decimal.NewFromInt(100),
		Details:    []domain.RentalDetail{{EquipmentID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(20), Subtotal: decimal.NewFromInt(100)}},
	}}
	db.Maintenance = []domain.MaintenanceRecord{{ID: 1, MaintenanceDraft: domain.MaintenanceDraft{
		EquipmentID: 1, Quantity: 2, Reason: "Worn chuck", StartDate: "2024-03-08", Status: domain.MaintenanceStatusInMaintenance,
	}}}
	return db
}

func newWorkspace(t *testing.T, store *MockDocumentStore) *service.Workspace {
	t.Helper()
	ws := service.NewWorkspace(store, time.UTC)
	ws.SetClock(func() time.Time { return fixedNow })
	return ws
}
