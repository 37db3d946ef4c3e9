package service

import (
	"context"
	"sort"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/utils"
)

type rentalService struct {
	ws *Workspace
}

func NewRentalService(ws *Workspace) RentalService {
	return &rentalService{ws: ws}
}

// ListRentals returns every rental, newest folio first, classified against
// the current time.
func (s *rentalService) ListRentals(ctx context.Context) ([]RentalView, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := s.ws.Now()
	views := make([]RentalView, 0, len(db.Rentals))
	for _, r := range db.Rentals {
		views = append(views, newRentalView(db, r, now))
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Folio > views[j].Folio })
	return views, nil
}

func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]RentalView, error) {
	all, err := s.ListRentals(ctx)
	if err != nil {
		return nil, err
	}
	overdue := make([]RentalView, 0)
	for _, v := range all {
		if v.DisplayStatus == domain.RentalStatusOverdue {
			overdue = append(overdue, v)
		}
	}
	return overdue, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int) (RentalView, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return RentalView{}, err
	}
	r, ok := db.FindRental(id)
	if !ok {
		return RentalView{}, &domain.NotFoundError{Entity: "rental", ID: id}
	}
	return newRentalView(db, r, s.ws.Now()), nil
}

// QuoteRental prices a cart without touching any state.
func (s *rentalService) QuoteRental(ctx context.Context, req lifecycle.RentalRequest) (utils.RentalCostBreakdown, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return utils.RentalCostBreakdown{}, err
	}
	return lifecycle.PriceCart(db, s.inBusinessZone(req))
}

func (s *rentalService) CreateRental(ctx context.Context, req lifecycle.RentalRequest) (domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "client_id", req.ClientID, "rental_type", req.RentalType, "lines", len(req.Lines))
	req = s.inBusinessZone(req)

	var created domain.Rental
	_, _, err := s.ws.Apply(ctx, "CreateRental", func(db domain.Database) (domain.Database, bool, error) {
		next, rental, err := lifecycle.CreateRental(db, req)
		created = rental
		return next, err == nil, err
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return domain.Rental{}, err
	}

	logger.Info("Rental created", "rental_id", created.ID, "folio", created.Folio, "total", created.Total.StringFixed(2))
	logger.ExitMethod("rentalService.CreateRental", "rental_id", created.ID)
	return created, nil
}

// ReturnRental restocks the rented items. Returning an unknown or already
// returned rental is a successful no-op.
func (s *rentalService) ReturnRental(ctx context.Context, id int) (bool, error) {
	logger.EnterMethod("rentalService.ReturnRental", "rental_id", id)

	_, changed, err := s.ws.Apply(ctx, "ReturnRental", func(db domain.Database) (domain.Database, bool, error) {
		next, changed := lifecycle.ReturnRental(db, id)
		return next, changed, nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnRental", err)
		return false, err
	}

	logger.ExitMethod("rentalService.ReturnRental", "returned", changed)
	return changed, nil
}

func (s *rentalService) inBusinessZone(req lifecycle.RentalRequest) lifecycle.RentalRequest {
	loc := s.ws.Location()
	req.StartDate = req.StartDate.In(loc)
	req.ReturnDate = req.ReturnDate.In(loc)
	return req
}
