package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Handler exposes user management over HTTP.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a users HTTP handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("users: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Create handles POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" {
		respond.Fail(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.store.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Fail(w, http.StatusConflict, "a user with that email already exists")
			return
		}
		respond.Internal(w, h.logger, "users.create", err)
		return
	}

	h.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	respond.Success(w, http.StatusCreated, "user", user)
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		respond.Internal(w, h.logger, "users.list", err)
		return
	}
	respond.SuccessCount(w, http.StatusOK, "users", list, len(list))
}

// GrantAdmin handles PUT /users/admin/{id}. The Verify and admin-only gates
// run before this.
func (h *Handler) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.GrantAdmin(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(w, "user not found")
			return
		}
		respond.Internal(w, h.logger, "users.grant_admin", err)
		return
	}

	h.logger.Info("admin role granted", "user_id", id)
	respond.Success(w, http.StatusOK, "result", map[string]string{"id": id, "role": RoleAdmin})
}

// CheckAdmin handles GET /users/admin/{email}. Unknown emails are reported
// as non-admins, matching the public contract.
func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	isAdmin, err := h.store.IsAdmin(r.Context(), email)
	if err != nil {
		respond.Internal(w, h.logger, "users.check_admin", err)
		return
	}
	respond.Raw(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}
