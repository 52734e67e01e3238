package respond

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/medbook/doctors-portal/pkg/logging"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, 201, "booking", map[string]string{"id": "b-1"})

	if rec.Code != 201 {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	body := decode(t, rec)
	if body["status"] != "success" {
		t.Fatalf("expected success status, got %v", body["status"])
	}
	data := body["data"].(map[string]any)
	if data["booking"].(map[string]any)["id"] != "b-1" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestSuccessCountIncludesResults(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessCount(rec, 200, "users", []string{"a", "b"}, 2)

	body := decode(t, rec)
	if body["results"].(float64) != 2 {
		t.Fatalf("expected results 2, got %v", body["results"])
	}
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 409, "duplicate booking")

	if rec.Code != 409 {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "fail" || body["message"] != "duplicate booking" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatal("fail envelope must not carry data")
	}
}

func TestInternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Internal(rec, logging.Default(), "bookings.create", errors.New("dynamodb exploded"))

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "error" {
		t.Fatalf("expected error status, got %v", body["status"])
	}
	if body["message"] != "internal server error" {
		t.Fatalf("cause leaked: %v", body["message"])
	}
}
