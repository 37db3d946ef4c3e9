package http

import (
	"net/http"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/service"

	"github.com/gorilla/mux"
)

type MaintenanceHandler struct {
	maintenanceSvc service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceSvc: maintenanceSvc}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.maintenanceSvc.ListMaintenance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Maintenance records retrieved", records, map[string]any{"count": len(records)})
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d domain.MaintenanceDraft
	if err := decodeBody(w, r, &d); err != nil {
		badRequest(w, err.Error())
		return
	}
	record, err := h.maintenanceSvc.CreateMaintenance(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SuccessCreated(w, "Maintenance record created", record)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var d domain.MaintenanceDraft
	if err := decodeBody(w, r, &d); err != nil {
		badRequest(w, err.Error())
		return
	}
	record, err := h.maintenanceSvc.UpdateMaintenance(r.Context(), id, d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Maintenance record saved", record, nil)
}

// Complete is a successful no-op for unknown or completed records.
func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	completed, err := h.maintenanceSvc.CompleteMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Maintenance completed", map[string]any{"id": id, "changed": completed}, nil)
}

func RegisterMaintenanceRoutes(router *mux.Router, h *MaintenanceHandler) {
	router.HandleFunc("/maintenance", h.List).Methods(http.MethodGet)
	router.HandleFunc("/maintenance", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/maintenance/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/maintenance/{id}/complete", h.Complete).Methods(http.MethodPost)
}
