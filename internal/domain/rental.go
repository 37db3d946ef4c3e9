package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalType string

const (
	RentalTypeHour RentalType = "Hour"
	RentalTypeDay  RentalType = "Day"
)

func (t RentalType) Valid() bool {
	return t == RentalTypeHour || t == RentalTypeDay
}

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "Active"
	RentalStatusReturned RentalStatus = "Returned"
	// RentalStatusOverdue is computed at read time and never persisted.
	RentalStatusOverdue RentalStatus = "Overdue"
)

type RentalDetail struct {
	EquipmentID int             `json:"equipmentId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Rental is a priced checkout of one or more equipment items. Total is frozen
// at creation time.
type Rental struct {
	ID         int             `json:"id"`
	Folio      int             `json:"folio"`
	ClientID   int             `json:"clientId"`
	RentalType RentalType      `json:"rentalType"`
	StartDate  time.Time       `json:"startDate"`
	ReturnDate time.Time       `json:"returnDate"`
	Status     RentalStatus    `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Details    []RentalDetail  `json:"details"`
}

func (r Rental) IsOverdue(now time.Time) bool {
	return r.Status == RentalStatusActive && now.After(r.ReturnDate)
}

// DisplayStatus classifies the rental for presentation.
func (r Rental) DisplayStatus(now time.Time) RentalStatus {
	if r.Status == RentalStatusReturned {
		return RentalStatusReturned
	}
	if r.IsOverdue(now) {
		return RentalStatusOverdue
	}
	return RentalStatusActive
}
