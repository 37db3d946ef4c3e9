package http

import (
	"net/http"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/service"

	"github.com/gorilla/mux"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsSvc.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Settings retrieved", s, nil)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.Settings
	if err := decodeBody(w, r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}
	s, err := h.settingsSvc.UpdateSettings(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Settings saved", s, nil)
}

func RegisterSettingsRoutes(router *mux.Router, h *SettingsHandler) {
	router.HandleFunc("/settings", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/settings", h.Update).Methods(http.MethodPut)
}

type ClientHandler struct {
	clientSvc service.ClientService
}

func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientSvc.ListClients(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Clients retrieved", clients, map[string]any{"count": len(clients)})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	c, err := h.clientSvc.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Client retrieved", c, nil)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.Client
	if err := decodeBody(w, r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}
	c, err := h.clientSvc.CreateClient(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SuccessCreated(w, "Client created", c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var in domain.Client
	if err := decodeBody(w, r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}
	in.ID = id
	c, err := h.clientSvc.UpdateClient(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Client saved", c, nil)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.clientSvc.DeleteClient(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Client deleted", map[string]int{"id": id}, nil)
}

func RegisterClientRoutes(router *mux.Router, h *ClientHandler) {
	router.HandleFunc("/clients", h.List).Methods(http.MethodGet)
	router.HandleFunc("/clients", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/clients/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/clients/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/clients/{id}", h.Delete).Methods(http.MethodDelete)
}

type EquipmentHandler struct {
	equipmentSvc   service.EquipmentService
	maintenanceSvc service.MaintenanceService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService, maintenanceSvc service.MaintenanceService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc, maintenanceSvc: maintenanceSvc}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipmentSvc.ListEquipment(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Equipment retrieved", items, map[string]any{"count": len(items)})
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	e, err := h.equipmentSvc.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Equipment retrieved", e, nil)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.Equipment
	if err := decodeBody(w, r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}
	e, err := h.equipmentSvc.CreateEquipment(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SuccessCreated(w, "Equipment created", e)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var in domain.Equipment
	if err := decodeBody(w, r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}
	in.ID = id
	e, err := h.equipmentSvc.UpdateEquipment(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Equipment saved", e, nil)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.equipmentSvc.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Equipment deleted", map[string]int{"id": id}, nil)
}

// MaintenanceDraft returns the pre-filled "send to maintenance" form.
func (h *EquipmentHandler) MaintenanceDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	d, err := h.maintenanceSvc.NewDraft(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Maintenance draft", d, nil)
}

func RegisterEquipmentRoutes(router *mux.Router, h *EquipmentHandler) {
	router.HandleFunc("/equipment", h.List).Methods(http.MethodGet)
	router.HandleFunc("/equipment", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/equipment/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/equipment/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/equipment/{id}", h.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/equipment/{id}/maintenance-draft", h.MaintenanceDraft).Methods(http.MethodGet)
}
