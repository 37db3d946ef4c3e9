package lifecycle

import (
	"strings"

	"equipment-rental-manager/internal/domain"
)

// SaveSettings replaces the settings wholesale. The folio counter may move
// forward but never back, so folios are never reused.
func SaveSettings(db domain.Database, s domain.Settings) (domain.Database, domain.Settings, error) {
	if !s.Language.Valid() {
		return db, domain.Settings{}, domain.NewValidationError(domain.CodeInvalidValue, "language", "language must be %q or %q", domain.LanguageSpanish, domain.LanguageEnglish)
	}
	if s.NextInvoiceNumber < db.Settings.NextInvoiceNumber {
		return db, domain.Settings{}, domain.NewValidationError(domain.CodeInvalidValue, "nextInvoiceNumber",
			"next invoice number cannot go below %d", db.Settings.NextInvoiceNumber)
	}

	s.ID = domain.SettingsID
	next := db.Clone()
	next.Settings = s
	return next, s, nil
}

// SaveClient creates the client when ID is 0 and replaces it otherwise. An
// edit of an unknown id changes nothing and reports false.
func SaveClient(db domain.Database, c domain.Client) (domain.Database, domain.Client, bool, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return db, domain.Client{}, false, domain.NewValidationError(domain.CodeRequired, "name", "client name is required")
	}

	if c.ID == 0 {
		next := db.Clone()
		c.ID = NextID(next.Clients, func(c domain.Client) int { return c.ID })
		next.Clients = append(next.Clients, c)
		return next, c, true, nil
	}

	i := db.ClientIndex(c.ID)
	if i < 0 {
		return db, domain.Client{}, false, nil
	}
	next := db.Clone()
	next.Clients[i] = c
	return next, c, true, nil
}

// DeleteClient removes the client. Rentals keep their weak reference.
func DeleteClient(db domain.Database, id int) (domain.Database, bool) {
	i := db.ClientIndex(id)
	if i < 0 {
		return db, false
	}
	next := db.Clone()
	next.Clients = append(next.Clients[:i], next.Clients[i+1:]...)
	return next, true
}

func validateEquipment(e domain.Equipment) error {
	if e.Name == "" {
		return domain.NewValidationError(domain.CodeRequired, "name", "equipment name is required")
	}
	if e.PricePerHour.IsNegative() {
		return domain.NewValidationError(domain.CodeInvalidValue, "pricePerHour", "price per hour cannot be negative")
	}
	if e.PricePerDay.IsNegative() {
		return domain.NewValidationError(domain.CodeInvalidValue, "pricePerDay", "price per day cannot be negative")
	}
	if e.Stock < 0 {
		return domain.NewValidationError(domain.CodeInvalidValue, "stock", "stock cannot be negative")
	}
	return nil
}

// SaveEquipment creates (ID 0) or replaces an equipment item. The caller's
// AvailableStock is discarded; it is rebuilt by reconciliation.
func SaveEquipment(db domain.Database, e domain.Equipment) (domain.Database, domain.Equipment, bool, error) {
	e.Name = strings.TrimSpace(e.Name)
	if err := validateEquipment(e); err != nil {
		return db, domain.Equipment{}, false, err
	}

	if e.ID == 0 {
		next := db.Clone()
		e.ID = NextID(next.Equipment, func(e domain.Equipment) int { return e.ID })
		e.AvailableStock = 0
		next.Equipment = append(next.Equipment, e)
		return next, e, true, nil
	}

	i := db.EquipmentIndex(e.ID)
	if i < 0 {
		return db, domain.Equipment{}, false, nil
	}
	next := db.Clone()
	e.AvailableStock = next.Equipment[i].AvailableStock
	next.Equipment[i] = e
	return next, e, true, nil
}

// DeleteEquipment removes an item that no active rental or open maintenance
// record still points at.
func DeleteEquipment(db domain.Database, id int) (domain.Database, bool, error) {
	i := db.EquipmentIndex(id)
	if i < 0 {
		return db, false, nil
	}

	for _, r := range db.Rentals {
		if r.Status != domain.RentalStatusActive {
			continue
		}
		for _, d := range r.Details {
			if d.EquipmentID == id {
				return db, false, domain.NewValidationError(domain.CodeInUse, "equipmentId",
					"equipment %d is out on active rental folio %d", id, r.Folio)
			}
		}
	}
	for _, m := range db.Maintenance {
		if m.EquipmentID == id && m.Reserving() {
			return db, false, domain.NewValidationError(domain.CodeInUse, "equipmentId",
				"equipment %d has open maintenance record %d", id, m.ID)
		}
	}

	next := db.Clone()
	next.Equipment = append(next.Equipment[:i], next.Equipment[i+1:]...)
	return next, true, nil
}
