package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Handler exposes doctor management over HTTP. Create and Delete sit behind
// the admin gate in the router; authorization has already happened by the
// time these run.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a doctors HTTP handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("doctors: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Create handles POST /doctors.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Specialty == "" {
		respond.Fail(w, http.StatusBadRequest, "name and specialty are required")
		return
	}

	doctor, err := h.store.Create(r.Context(), &req)
	if err != nil {
		respond.Internal(w, h.logger, "doctors.create", err)
		return
	}

	h.logger.Info("doctor created", "doctor_id", doctor.ID, "specialty", doctor.Specialty)
	respond.Success(w, http.StatusCreated, "doctor", doctor)
}

// List handles GET /doctors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		respond.Internal(w, h.logger, "doctors.list", err)
		return
	}
	respond.SuccessCount(w, http.StatusOK, "doctors", list, len(list))
}

// Delete handles DELETE /doctors/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(w, "doctor not found")
			return
		}
		respond.Internal(w, h.logger, "doctors.delete", err)
		return
	}

	h.logger.Info("doctor deleted", "doctor_id", id)
	respond.Success(w, http.StatusOK, "result", map[string]string{"id": id, "deleted": "true"})
}
