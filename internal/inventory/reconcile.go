// Package inventory keeps the derived availableStock projection consistent
// with stock and open maintenance records.
package inventory

import "equipment-rental-manager/internal/domain"

// InMaintenance sums the quantities held by open maintenance records of one
// equipment item.
func InMaintenance(db domain.Database, equipmentID int) int {
	total := 0
	for _, m := range db.Maintenance {
		if m.EquipmentID == equipmentID && m.Reserving() {
			total += m.Quantity
		}
	}
	return total
}

// Available computes what availableStock is after reconciliation, without
// trusting the stored projection.
func Available(db domain.Database, equipmentID int) int {
	e, ok := db.FindEquipment(equipmentID)
	if !ok {
		return 0
	}
	return e.Stock - InMaintenance(db, equipmentID)
}

// Reconcile recomputes availableStock for every equipment item as stock minus
// the quantity in maintenance. Rentals are not subtracted: they move stock
// itself. Negative results are kept as they are so callers can flag them.
func Reconcile(db domain.Database) domain.Database {
	reserved := make(map[int]int, len(db.Equipment))
	for _, m := range db.Maintenance {
		if m.Reserving() {
			reserved[m.EquipmentID] += m.Quantity
		}
	}

	out := db.Clone()
	for i := range out.Equipment {
		out.Equipment[i].AvailableStock = out.Equipment[i].Stock - reserved[out.Equipment[i].ID]
	}
	return out
}

// Shortfall lists equipment whose available stock went negative, which
// happens when stock is lowered below what is currently in maintenance.
func Shortfall(db domain.Database) []domain.Equipment {
	var out []domain.Equipment
	for _, e := range db.Equipment {
		if e.AvailableStock < 0 {
			out = append(out, e)
		}
	}
	return out
}
