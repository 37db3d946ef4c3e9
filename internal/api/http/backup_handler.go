package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"equipment-rental-manager/internal/service"

	"github.com/gorilla/mux"
)

type BackupHandler struct {
	backupSvc service.BackupService
}

func NewBackupHandler(backupSvc service.BackupService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc}
}

// Export streams the raw database document as a download.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf strings.Builder
	if _, err := h.backupSvc.Export(r.Context(), &buf); err != nil {
		writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("database-%s.json", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, buf.String())
}

// Import accepts the document either as the raw body or as the "file" part
// of a multipart form.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = http.MaxBytesReader(w, r.Body, service.MaxImportSize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "missing file field")
			return
		}
		defer file.Close()
		body = file
	}

	if err := h.backupSvc.Import(r.Context(), body); err != nil {
		writeError(w, r, err)
		return
	}
	Success(w, "Database imported", map[string]bool{"reloaded": true}, nil)
}

func RegisterBackupRoutes(router *mux.Router, h *BackupHandler) {
	router.HandleFunc("/backup/export", h.Export).Methods(http.MethodGet)
	router.HandleFunc("/backup/import", h.Import).Methods(http.MethodPost)
}
