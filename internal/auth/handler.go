package auth

import (
	"context"
	"net/http"

	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/internal/observability/metrics"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// EmailRegistry reports whether an email belongs to a known user.
type EmailRegistry interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// Handler issues access tokens for known users.
type Handler struct {
	users   EmailRegistry
	issuer  *Issuer
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a token handler.
func NewHandler(users EmailRegistry, issuer *Issuer, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if users == nil {
		panic("auth: email registry required")
	}
	if issuer == nil {
		panic("auth: issuer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{users: users, issuer: issuer, metrics: m, logger: logger}
}

// IssueToken handles GET /jwt?email=. Unknown emails are unauthorized.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respond.Fail(w, http.StatusBadRequest, "email is required")
		return
	}

	known, err := h.users.Exists(r.Context(), email)
	if err != nil {
		respond.Internal(w, h.logger, "auth.issue_token", err)
		return
	}
	if !known {
		respond.Unauthorized(w)
		return
	}

	token, err := h.issuer.Issue(email)
	if err != nil {
		respond.Internal(w, h.logger, "auth.issue_token", err)
		return
	}

	h.metrics.ObserveTokenIssued()
	h.logger.Info("access token issued", "email", email)
	respond.Success(w, http.StatusOK, "accessToken", token)
}
