package lifecycle

import (
	"strings"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/inventory"
	"equipment-rental-manager/internal/utils"
)

// NewMaintenanceDraft pre-fills the "send to maintenance" form for one item.
func NewMaintenanceDraft(equipmentID int, today time.Time) domain.MaintenanceDraft {
	return domain.MaintenanceDraft{
		EquipmentID: equipmentID,
		Quantity:    1,
		StartDate:   utils.FormatDate(today),
		Status:      domain.MaintenanceStatusInMaintenance,
	}
}

// validateDraft checks everything except the quantity ceiling.
func validateDraft(db domain.Database, d domain.MaintenanceDraft) (domain.Equipment, error) {
	e, ok := db.FindEquipment(d.EquipmentID)
	if !ok {
		return domain.Equipment{}, domain.NewValidationError(domain.CodeUnknownReference, "equipmentId",
			"equipment %d does not exist", d.EquipmentID)
	}
	if strings.TrimSpace(d.Reason) == "" {
		return domain.Equipment{}, domain.NewValidationError(domain.CodeRequired, "reason", "a maintenance reason is required")
	}
	if d.Quantity < 1 {
		return domain.Equipment{}, domain.NewValidationError(domain.CodeNonPositiveQuantity, "quantity", "quantity must be at least 1")
	}
	if _, err := utils.ParseDate(d.StartDate); err != nil {
		return domain.Equipment{}, domain.NewValidationError(domain.CodeInvalidValue, "startDate", "%v", err)
	}
	optional := []struct{ field, value string }{
		{"expectedReturnDate", d.ExpectedReturnDate},
		{"actualReturnDate", d.ActualReturnDate},
	}
	for _, o := range optional {
		if o.value == "" {
			continue
		}
		if _, err := utils.ParseDate(o.value); err != nil {
			return domain.Equipment{}, domain.NewValidationError(domain.CodeInvalidValue, o.field, "%v", err)
		}
	}
	if d.Cost != nil && d.Cost.IsNegative() {
		return domain.Equipment{}, domain.NewValidationError(domain.CodeInvalidValue, "cost", "cost cannot be negative")
	}
	return e, nil
}

func checkCeiling(e domain.Equipment, quantity, ceiling int) error {
	if quantity > ceiling {
		return domain.NewValidationError(domain.CodeInsufficientStock, "quantity",
			"only %d units of %s available for maintenance", ceiling, e.Name)
	}
	return nil
}

// CreateMaintenance stores a new In Maintenance record. The quantity may not
// exceed what is currently available.
func CreateMaintenance(db domain.Database, d domain.MaintenanceDraft) (domain.Database, domain.MaintenanceRecord, error) {
	d.Reason = strings.TrimSpace(d.Reason)
	d.Status = domain.MaintenanceStatusInMaintenance
	d.ActualReturnDate = ""

	e, err := validateDraft(db, d)
	if err != nil {
		return db, domain.MaintenanceRecord{}, err
	}
	if err := checkCeiling(e, d.Quantity, inventory.Available(db, d.EquipmentID)); err != nil {
		return db, domain.MaintenanceRecord{}, err
	}

	next := db.Clone()
	record := domain.MaintenanceRecord{
		ID:               NextID(next.Maintenance, func(m domain.MaintenanceRecord) int { return m.ID }),
		MaintenanceDraft: d,
	}
	next.Maintenance = append(next.Maintenance, record)
	return next, record, nil
}

// UpdateMaintenance replaces the fields of an existing record. While the
// record stays In Maintenance its quantity is capped by the current
// availability plus what this record already holds on the same item, so an
// edit never counts its own reservation against itself. Completed records
// cannot be reopened. An unknown id changes nothing and reports false.
func UpdateMaintenance(db domain.Database, id int, d domain.MaintenanceDraft, today time.Time) (domain.Database, domain.MaintenanceRecord, bool, error) {
	i := db.MaintenanceIndex(id)
	if i < 0 {
		return db, domain.MaintenanceRecord{}, false, nil
	}
	original := db.Maintenance[i]

	d.Reason = strings.TrimSpace(d.Reason)
	if d.Status == "" {
		d.Status = original.Status
	}
	switch d.Status {
	case domain.MaintenanceStatusInMaintenance, domain.MaintenanceStatusCompleted:
	default:
		return db, domain.MaintenanceRecord{}, false, domain.NewValidationError(domain.CodeInvalidValue, "status", "unknown maintenance status %q", d.Status)
	}
	if original.Status == domain.MaintenanceStatusCompleted && d.Status == domain.MaintenanceStatusInMaintenance {
		return db, domain.MaintenanceRecord{}, false, domain.NewValidationError(domain.CodeInvalidTransition, "status",
			"maintenance record %d is already completed", id)
	}

	e, err := validateDraft(db, d)
	if err != nil {
		return db, domain.MaintenanceRecord{}, false, err
	}

	if d.Status == domain.MaintenanceStatusInMaintenance {
		ceiling := inventory.Available(db, d.EquipmentID)
		if original.Reserving() && original.EquipmentID == d.EquipmentID {
			ceiling += original.Quantity
		}
		if err := checkCeiling(e, d.Quantity, ceiling); err != nil {
			return db, domain.MaintenanceRecord{}, false, err
		}
	} else if d.ActualReturnDate == "" {
		d.ActualReturnDate = utils.FormatDate(today)
	}

	next := db.Clone()
	record := domain.MaintenanceRecord{ID: id, MaintenanceDraft: d}
	next.Maintenance[i] = record
	return next, record, true, nil
}

// CompleteMaintenance closes an open record and stamps today's date as the
// actual return. Stock is not touched; availability recovers on the next
// reconciliation. Unknown or completed records leave db unchanged.
func CompleteMaintenance(db domain.Database, id int, today time.Time) (domain.Database, bool) {
	i := db.MaintenanceIndex(id)
	if i < 0 || db.Maintenance[i].Status == domain.MaintenanceStatusCompleted {
		return db, false
	}

	next := db.Clone()
	next.Maintenance[i].Status = domain.MaintenanceStatusCompleted
	next.Maintenance[i].ActualReturnDate = utils.FormatDate(today)
	return next, true
}
