package service

import (
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/inventory"
)

// RentalView is a rental with its read-time classification and the client
// name resolved.
type RentalView struct {
	domain.Rental
	ClientName    string              `json:"clientName"`
	DisplayStatus domain.RentalStatus `json:"displayStatus"`
}

// EquipmentView adds the units held by open maintenance records.
type EquipmentView struct {
	domain.Equipment
	InMaintenance int `json:"inMaintenance"`
}

type MaintenanceView struct {
	domain.MaintenanceRecord
	EquipmentName string `json:"equipmentName"`
}

func newRentalView(db domain.Database, r domain.Rental, now time.Time) RentalView {
	return RentalView{
		Rental:        r,
		ClientName:    db.ClientName(r.ClientID),
		DisplayStatus: r.DisplayStatus(now),
	}
}

func newEquipmentView(db domain.Database, e domain.Equipment) EquipmentView {
	return EquipmentView{Equipment: e, InMaintenance: inventory.InMaintenance(db, e.ID)}
}

func newMaintenanceView(db domain.Database, m domain.MaintenanceRecord) MaintenanceView {
	return MaintenanceView{MaintenanceRecord: m, EquipmentName: db.EquipmentName(m.EquipmentID)}
}
