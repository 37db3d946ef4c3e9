package domain

import "github.com/shopspring/decimal"

func init() {
	// The document format stores money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Database is the aggregate root and the unit of persistence.
type Database struct {
	Settings    Settings            `json:"settings"`
	Clients     []Client            `json:"clients"`
	Equipment   []Equipment         `json:"equipment"`
	Rentals     []Rental            `json:"rentals"`
	Maintenance []MaintenanceRecord `json:"maintenance"`
}

func NewDatabase() Database {
	return Database{
		Settings:    DefaultSettings(),
		Clients:     []Client{},
		Equipment:   []Equipment{},
		Rentals:     []Rental{},
		Maintenance: []MaintenanceRecord{},
	}
}

// Normalize fills the defaults a partially written document may be missing.
func (db Database) Normalize() Database {
	out := db.Clone()
	out.Settings.ID = SettingsID
	if out.Settings.NextInvoiceNumber == 0 {
		out.Settings.NextInvoiceNumber = DefaultNextInvoiceNumber
	}
	if out.Settings.Language == "" {
		out.Settings.Language = LanguageSpanish
	}
	return out
}

// Clone returns a deep copy so that transitions never share backing arrays
// with the snapshot they were derived from. Nil collections become empty.
func (db Database) Clone() Database {
	out := Database{
		Settings:    db.Settings,
		Clients:     append(make([]Client, 0, len(db.Clients)), db.Clients...),
		Equipment:   append(make([]Equipment, 0, len(db.Equipment)), db.Equipment...),
		Rentals:     make([]Rental, 0, len(db.Rentals)),
		Maintenance: make([]MaintenanceRecord, 0, len(db.Maintenance)),
	}
	for _, r := range db.Rentals {
		r.Details = append(make([]RentalDetail, 0, len(r.Details)), r.Details...)
		out.Rentals = append(out.Rentals, r)
	}
	for _, m := range db.Maintenance {
		if m.Cost != nil {
			c := *m.Cost
			m.Cost = &c
		}
		out.Maintenance = append(out.Maintenance, m)
	}
	return out
}

func (db Database) ClientIndex(id int) int {
	for i, c := range db.Clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (db Database) EquipmentIndex(id int) int {
	for i, e := range db.Equipment {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (db Database) RentalIndex(id int) int {
	for i, r := range db.Rentals {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (db Database) MaintenanceIndex(id int) int {
	for i, m := range db.Maintenance {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (db Database) FindClient(id int) (Client, bool) {
	if i := db.ClientIndex(id); i >= 0 {
		return db.Clients[i], true
	}
	return Client{}, false
}

func (db Database) FindEquipment(id int) (Equipment, bool) {
	if i := db.EquipmentIndex(id); i >= 0 {
		return db.Equipment[i], true
	}
	return Equipment{}, false
}

func (db Database) FindRental(id int) (Rental, bool) {
	if i := db.RentalIndex(id); i >= 0 {
		return db.Rentals[i], true
	}
	return Rental{}, false
}

func (db Database) FindMaintenance(id int) (MaintenanceRecord, bool) {
	if i := db.MaintenanceIndex(id); i >= 0 {
		return db.Maintenance[i], true
	}
	return MaintenanceRecord{}, false
}

// ClientName resolves a weak client reference, falling back to a localized
// placeholder when the client no longer exists.
func (db Database) ClientName(id int) string {
	if c, ok := db.FindClient(id); ok {
		return c.Name
	}
	return UnknownClientLabel(db.Settings.Language)
}

// EquipmentName resolves a weak equipment reference.
func (db Database) EquipmentName(id int) string {
	if e, ok := db.FindEquipment(id); ok {
		return e.Name
	}
	if db.Settings.Language == LanguageEnglish {
		return "Unknown Equipment"
	}
	return "Equipo Desconocido"
}
