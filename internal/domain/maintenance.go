package domain

import "github.com/shopspring/decimal"

type MaintenanceStatus string

const (
	MaintenanceStatusInMaintenance MaintenanceStatus = "In Maintenance"
	MaintenanceStatusCompleted     MaintenanceStatus = "Completed"
)

// DateLayout is the calendar-date format used by maintenance records.
const DateLayout = "2006-01-02"

// MaintenanceDraft holds the editable fields of a maintenance record. A draft
// has no identity until it is stored as a MaintenanceRecord.
type MaintenanceDraft struct {
	EquipmentID        int               `json:"equipmentId"`
	Quantity           int               `json:"quantity"`
	Reason             string            `json:"reason"`
	StartDate          string            `json:"startDate"`
	ExpectedReturnDate string            `json:"expectedReturnDate,omitempty"`
	ActualReturnDate   string            `json:"actualReturnDate,omitempty"`
	Status             MaintenanceStatus `json:"status"`
	Cost               *decimal.Decimal  `json:"cost,omitempty"`
	Notes              string            `json:"notes,omitempty"`
}

type MaintenanceRecord struct {
	ID int `json:"id"`
	MaintenanceDraft
}

func (m MaintenanceRecord) Reserving() bool {
	return m.Status == MaintenanceStatusInMaintenance
}
