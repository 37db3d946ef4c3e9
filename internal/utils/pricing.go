package utils

import (
	"fmt"
	"strings"
	"time"

	"equipment-rental-manager/internal/domain"

	"github.com/shopspring/decimal"
)

// CartItem is one equipment item in a rental cart. Prices are read from the
// equipment at calculation time.
type CartItem struct {
	Equipment domain.Equipment
	Quantity  int
}

// LineCost is the priced form of a CartItem.
type LineCost struct {
	EquipmentID int             `json:"equipmentId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// RentalCostBreakdown provides the detailed cost of a rental.
type RentalCostBreakdown struct {
	RentalType domain.RentalType `json:"rentalType"`
	Duration   int               `json:"duration"`
	Lines      []LineCost        `json:"lines"`
	Total      decimal.Decimal   `json:"total"`
}

// ParseDate converts a yyyy-mm-dd formatted string into a date at midnight UTC
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	d, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return d, nil
}

// FormatDate renders t as yyyy-mm-dd in its own location
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// CalendarDaysBetween counts calendar-day boundaries crossed from start to end,
// both read in start's location.
func CalendarDaysBetween(start, end time.Time) int {
	end = end.In(start.Location())
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// ComputeDuration returns the billable units between start and end.
// Hour rentals bill whole elapsed hours, Day rentals bill calendar days
// including both ends; either is at least 1. A period that does not move
// forward is 0.
func ComputeDuration(rentalType domain.RentalType, start, end time.Time) int {
	if !end.After(start) {
		return 0
	}

	var duration int
	switch rentalType {
	case domain.RentalTypeHour:
		duration = int(end.Sub(start) / time.Hour)
	case domain.RentalTypeDay:
		duration = CalendarDaysBetween(start, end) + 1
	default:
		return 0
	}

	if duration < 1 {
		duration = 1
	}
	return duration
}

// UnitPrice picks the equipment's hourly or daily price
func UnitPrice(e domain.Equipment, rentalType domain.RentalType) decimal.Decimal {
	if rentalType == domain.RentalTypeHour {
		return e.PricePerHour
	}
	return e.PricePerDay
}

// LineSubtotal is unitPrice * quantity * duration
func LineSubtotal(unitPrice decimal.Decimal, quantity, duration int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(int64(duration)))
}

// ComputeTotal sums unitPrice * quantity * duration over the cart
func ComputeTotal(items []CartItem, rentalType domain.RentalType, start, end time.Time) decimal.Decimal {
	return CalculateRentalCostWithBreakdown(items, rentalType, start, end).Total
}

// CalculateRentalCostWithBreakdown prices every cart line. When the duration
// is 0 every subtotal and the total are 0.
func CalculateRentalCostWithBreakdown(items []CartItem, rentalType domain.RentalType, start, end time.Time) RentalCostBreakdown {
	duration := ComputeDuration(rentalType, start, end)

	breakdown := RentalCostBreakdown{
		RentalType: rentalType,
		Duration:   duration,
		Lines:      make([]LineCost, 0, len(items)),
		Total:      decimal.Zero,
	}
	for _, item := range items {
		price := UnitPrice(item.Equipment, rentalType)
		subtotal := LineSubtotal(price, item.Quantity, duration)
		breakdown.Lines = append(breakdown.Lines, LineCost{
			EquipmentID: item.Equipment.ID,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			Subtotal:    subtotal,
		})
		breakdown.Total = breakdown.Total.Add(subtotal)
	}
	return breakdown
}
