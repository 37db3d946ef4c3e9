package lifecycle

import (
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/utils"
)

// CartLine is one requested equipment item and quantity.
type CartLine struct {
	EquipmentID int `json:"equipmentId"`
	Quantity    int `json:"quantity"`
}

type RentalRequest struct {
	ClientID   int               `json:"clientId"`
	RentalType domain.RentalType `json:"rentalType"`
	StartDate  time.Time         `json:"startDate"`
	ReturnDate time.Time         `json:"returnDate"`
	Lines      []CartLine        `json:"lines"`
}

// mergeLines folds repeated equipment ids into one line, keeping the order
// in which each id first appeared.
func mergeLines(lines []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(lines))
	index := make(map[int]int, len(lines))
	for _, l := range lines {
		if i, ok := index[l.EquipmentID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.EquipmentID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

// PriceCart validates the cart against the equipment catalogue and prices it.
// Quantities are checked against stock, not availableStock: rentals do not
// look at maintenance.
func PriceCart(db domain.Database, req RentalRequest) (utils.RentalCostBreakdown, error) {
	if !req.RentalType.Valid() {
		return utils.RentalCostBreakdown{}, domain.NewValidationError(domain.CodeInvalidValue, "rentalType",
			"rental type must be %q or %q", domain.RentalTypeHour, domain.RentalTypeDay)
	}
	if len(req.Lines) == 0 {
		return utils.RentalCostBreakdown{}, domain.NewValidationError(domain.CodeRequired, "lines", "at least one equipment item is required")
	}

	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return utils.RentalCostBreakdown{}, domain.NewValidationError(domain.CodeNonPositiveQuantity, "quantity",
				"quantity for equipment %d must be positive", l.EquipmentID)
		}
	}

	lines := mergeLines(req.Lines)
	items := make([]utils.CartItem, 0, len(lines))
	for _, l := range lines {
		e, ok := db.FindEquipment(l.EquipmentID)
		if !ok {
			return utils.RentalCostBreakdown{}, domain.NewValidationError(domain.CodeUnknownReference, "equipmentId",
				"equipment %d does not exist", l.EquipmentID)
		}
		if l.Quantity > e.Stock {
			return utils.RentalCostBreakdown{}, domain.NewValidationError(domain.CodeInsufficientStock, "quantity",
				"only %d units of %s in stock", e.Stock, e.Name)
		}
		items = append(items, utils.CartItem{Equipment: e, Quantity: l.Quantity})
	}

	return utils.CalculateRentalCostWithBreakdown(items, req.RentalType, req.StartDate, req.ReturnDate), nil
}

// CreateRental stamps the next folio, advances the counter, takes the rented
// quantities out of stock and records the rental as Active with its total
// frozen.
func CreateRental(db domain.Database, req RentalRequest) (domain.Database, domain.Rental, error) {
	if _, ok := db.FindClient(req.ClientID); !ok {
		return db, domain.Rental{}, domain.NewValidationError(domain.CodeUnknownReference, "clientId",
			"client %d does not exist", req.ClientID)
	}

	breakdown, err := PriceCart(db, req)
	if err != nil {
		return db, domain.Rental{}, err
	}
	if breakdown.Duration == 0 {
		return db, domain.Rental{}, domain.NewValidationError(domain.CodeInvalidPeriod, "returnDate",
			"return date must be after start date")
	}

	next := db.Clone()
	folio := next.Settings.NextInvoiceNumber
	next.Settings.NextInvoiceNumber = folio + 1

	rental := domain.Rental{
		ID:         NextID(next.Rentals, func(r domain.Rental) int { return r.ID }),
		Folio:      folio,
		ClientID:   req.ClientID,
		RentalType: req.RentalType,
		StartDate:  req.StartDate,
		ReturnDate: req.ReturnDate,
		Status:     domain.RentalStatusActive,
		Total:      breakdown.Total,
		Details:    make([]domain.RentalDetail, 0, len(breakdown.Lines)),
	}
	for _, l := range breakdown.Lines {
		rental.Details = append(rental.Details, domain.RentalDetail{
			EquipmentID: l.EquipmentID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
		next.Equipment[next.EquipmentIndex(l.EquipmentID)].Stock -= l.Quantity
	}

	next.Rentals = append(next.Rentals, rental)
	return next, rental, nil
}

// ReturnRental puts the rented quantities back into stock and marks the
// rental Returned. Unknown or already returned rentals leave db unchanged and
// report false. Lines whose equipment was deleted are skipped.
func ReturnRental(db domain.Database, rentalID int) (domain.Database, bool) {
	i := db.RentalIndex(rentalID)
	if i < 0 || db.Rentals[i].Status == domain.RentalStatusReturned {
		return db, false
	}

	next := db.Clone()
	for _, d := range next.Rentals[i].Details {
		if j := next.EquipmentIndex(d.EquipmentID); j >= 0 {
			next.Equipment[j].Stock += d.Quantity
		}
	}
	next.Rentals[i].Status = domain.RentalStatusReturned
	return next, true
}
