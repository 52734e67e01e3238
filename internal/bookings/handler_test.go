package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestHandler(t *testing.T, store Store) *Handler {
	t.Helper()
	return NewHandler(NewService(store, nil, nil), nil, nil)
}

func TestHandlerCreateReturns201WithID(t *testing.T) {
	h := newTestHandler(t, NewInMemoryStore())

	body := `{"patientName":"Alice","email":"a@x.com","appointmentDate":"2023-01-01","treatmentName":"Cleaning","slot":"9am"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Booking Booking `json:"booking"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Data.Booking.ID == "" {
		t.Fatalf("expected generated id in envelope, got %+v", resp)
	}
}

func TestHandlerCreateDuplicateIsConflict(t *testing.T) {
	store := NewInMemoryStore()
	h := newTestHandler(t, store)

	body := `{"email":"a@x.com","appointmentDate":"2023-01-01","treatmentName":"Cleaning","slot":"9am"}`
	for i, wantCode := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)
		if rec.Code != wantCode {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, wantCode, rec.Code)
		}
		if wantCode == http.StatusConflict {
			var resp struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != "fail" {
				t.Fatalf("expected fail status, got %s", resp.Status)
			}
			if !strings.Contains(resp.Message, "Cleaning") || !strings.Contains(resp.Message, "2023-01-01") {
				t.Fatalf("expected message to name treatment and date, got %q", resp.Message)
			}
		}
	}

	list, _ := store.ListByEmail(context.Background(), "a@x.com")
	if len(list) != 1 {
		t.Fatalf("expected exactly one persisted booking, got %d", len(list))
	}
}

func TestHandlerCreateBadJSON(t *testing.T) {
	h := newTestHandler(t, NewInMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerCreateMissingFields(t *testing.T) {
	h := newTestHandler(t, NewInMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerGetByIDNotFoundIs404(t *testing.T) {
	h := newTestHandler(t, NewInMemoryStore())

	r := chi.NewRouter()
	r.Get("/bookings/{id}", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/bookings/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "fail" {
		t.Fatalf("expected explicit fail envelope, got %s", resp.Status)
	}
}

func TestHandlerListByEmail(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store, nil, nil)
	if _, err := svc.Create(context.Background(), validRequest()); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	h := NewHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=a@x.com", nil)
	rec := httptest.NewRecorder()
	h.ListByEmail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Results int `json:"results"`
		Data    struct {
			Bookings []Booking `json:"bookings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Results != 1 || len(resp.Data.Bookings) != 1 {
		t.Fatalf("expected one booking, got %+v", resp)
	}
}
