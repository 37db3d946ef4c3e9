package http

import (
	"net/http"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/service"
	"equipment-rental-manager/internal/utils"

	"github.com/gorilla/mux"
)

// rentalRequestBody is the rental form. Timestamps may be RFC 3339 or local
// "yyyy-mm-ddThh:mm" values in the business timezone.
type rentalRequestBody struct {
	ClientID   int                  `json:"clientId"`
	RentalType domain.RentalType    `json:"rentalType"`
	StartDate  string               `json:"startDate"`
	ReturnDate string               `json:"returnDate"`
	Lines      []lifecycle.CartLine `json:"lines"`
}

func (b rentalRequestBody) toRequest(loc *time.Location) (lifecycle.RentalRequest, error) {
	start, err := utils.ParseTimestamp(b.StartDate, loc)
	if err != nil {
		return lifecycle.RentalRequest{}, domain.NewValidationError(domain.CodeInvalidValue, "startDate", "%v", err)
	}
	end, err := utils.ParseTimestamp(b.ReturnDate, loc)
	if err != nil {
		return lifecycle.RentalRequest{}, domain.NewValidationError(domain.CodeInvalidValue, "returnDate", "%v", err)
	}
	return lifecycle.RentalRequest{
		ClientID:   b.ClientID,
		RentalType: b.RentalType,
		StartDate:  start,
		ReturnDate: end,
		Lines:      b.Lines,
	}, nil
}

type RentalHandler struct {
	rentalSvc service.RentalService
	location  *time.Location
}

func NewRentalHandler(rentalSvc service.RentalService, location *time.Location) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, location: location}
}

// List returns all rentals, or only overdue ones with ?status=Overdue.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rentals []service.RentalView
		err     error
	)
	if domain.RentalStatus(r.URL.Query().Get("status")) == domain.RentalStatusOverdue {
		rentals, err = h.rentalSvc.ListOverdueRentals(r.Context())
	} else {
		rentals, err = h.rentalSvc.ListRentals(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Rentals retrieved", rentals, map[string]any{"count": len(rentals)})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Rental retrieved", rental, nil)
}

func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	quote, err := h.rentalSvc.QuoteRental(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Rental quoted", quote, nil)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	rental, err := h.rentalSvc.CreateRental(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SuccessCreated(w, "Rental created", rental)
}

// Return is a successful no-op for unknown or already returned rentals.
func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	returned, err := h.rentalSvc.ReturnRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Rental returned", map[string]any{"id": id, "changed": returned}, nil)
}

func (h *RentalHandler) readRequest(w http.ResponseWriter, r *http.Request) (lifecycle.RentalRequest, bool) {
	var body rentalRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		badRequest(w, err.Error())
		return lifecycle.RentalRequest{}, false
	}
	req, err := body.toRequest(h.location)
	if err != nil {
		writeError(w, r, err)
		return lifecycle.RentalRequest{}, false
	}
	return req, true
}

func RegisterRentalRoutes(router *mux.Router, h *RentalHandler) {
	router.HandleFunc("/rentals", h.List).Methods(http.MethodGet)
	router.HandleFunc("/rentals", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/rentals/quote", h.Quote).Methods(http.MethodPost)
	router.HandleFunc("/rentals/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/rentals/{id}/return", h.Return).Methods(http.MethodPost)
}
