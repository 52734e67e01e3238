package respond

import (
	"encoding/json"
	"net/http"

	"github.com/medbook/doctors-portal/pkg/logging"
)

// envelope is the JSON shape every endpoint returns: successes carry data,
// failures carry a message.
type envelope struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Results *int           `json:"results,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Success writes {"status":"success","data":{key: payload}} with the given code.
func Success(w http.ResponseWriter, code int, key string, payload any) {
	write(w, code, envelope{
		Status: "success",
		Data:   map[string]any{key: payload},
	})
}

// SuccessCount is Success plus a top-level results count for list endpoints.
func SuccessCount(w http.ResponseWriter, code int, key string, payload any, count int) {
	write(w, code, envelope{
		Status:  "success",
		Results: &count,
		Data:    map[string]any{key: payload},
	})
}

// Raw writes an unenveloped JSON body. Used only where the external contract
// fixes the shape (payment intents, admin lookup).
func Raw(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// Fail writes {"status":"fail","message":...} for client-attributable errors.
func Fail(w http.ResponseWriter, code int, message string) {
	write(w, code, envelope{Status: "fail", Message: message})
}

// Unauthorized writes the 401 fail envelope.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, "unauthorized access")
}

// Forbidden writes the 403 fail envelope.
func Forbidden(w http.ResponseWriter) {
	Fail(w, http.StatusForbidden, "forbidden access")
}

// NotFound writes the 404 fail envelope.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "resource not found"
	}
	Fail(w, http.StatusNotFound, message)
}

// Internal logs the cause and writes a generic 500 error envelope. The cause
// never reaches the client.
func Internal(w http.ResponseWriter, logger *logging.Logger, op string, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger.Error("internal error", "op", op, "error", err)
	write(w, http.StatusInternalServerError, envelope{
		Status:  "error",
		Message: "internal server error",
	})
}

func write(w http.ResponseWriter, code int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}
