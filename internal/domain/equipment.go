package domain

import "github.com/shopspring/decimal"

// Equipment is a rentable item. AvailableStock is a projection maintained by
// the inventory reconciler and must not be written anywhere else.
type Equipment struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PricePerHour   decimal.Decimal `json:"pricePerHour"`
	PricePerDay    decimal.Decimal `json:"pricePerDay"`
	Stock          int             `json:"stock"`
	AvailableStock int             `json:"availableStock"`
	ImageBase64    string          `json:"imageBase64"`
}
