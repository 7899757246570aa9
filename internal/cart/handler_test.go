package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newTestRouter(repo CartRepo) chi.Router {
	h := NewHandler(HandlerDeps{Repo: repo}, apt.NewConfig(), nil)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestAddEntry(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "validEntry",
			body:       `{"customerEmail":"a@b.com","foodId":"x","quantity":2}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missingEmail",
			body:       `{"foodId":"x","quantity":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalidJSON",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockCartRepo()
			router := newTestRouter(repo)

			req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("AddEntry status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAddEntryDefaultsQuantity(t *testing.T) {
	repo := NewMockCartRepo()
	router := newTestRouter(repo)

	body := `{"customerEmail":"a@b.com","foodId":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("AddEntry status = %d", rec.Code)
	}

	var created CartEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if created.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", created.Quantity)
	}
	if created.ID == uuid.Nil {
		t.Error("created entry should have a generated ID")
	}
}

func TestListByEmail(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{
			name:       "withEmail",
			query:      "?email=a@b.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missingEmail",
			query:      "",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockCartRepo()
			router := newTestRouter(repo)

			req := httptest.NewRequest(http.MethodGet, "/cart"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("ListByEmail status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusBadRequest {
				var resp map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("cannot decode response: %v", err)
				}
				if resp["message"] != "Email required" {
					t.Errorf("message = %v, want %q", resp["message"], "Email required")
				}
			}
		})
	}
}

func TestListByEmailFiltersOwner(t *testing.T) {
	repo := NewMockCartRepo()
	e1 := &CartEntry{ID: uuid.New(), CustomerEmail: "a@b.com", Quantity: 1}
	e2 := &CartEntry{ID: uuid.New(), CustomerEmail: "other@b.com", Quantity: 1}
	repo.entries[e1.ID] = e1
	repo.entries[e2.ID] = e2

	router := newTestRouter(repo)
	req := httptest.NewRequest(http.MethodGet, "/cart?email=a@b.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ListByEmail status = %d", rec.Code)
	}

	var entries []*CartEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if len(entries) != 1 || entries[0].CustomerEmail != "a@b.com" {
		t.Errorf("expected only a@b.com entries, got %+v", entries)
	}
}

func TestSetQuantity(t *testing.T) {
	known := uuid.MustParse("550e8400-e29b-41d4-a716-446655440010")

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{
			name:       "validQuantity",
			id:         known.String(),
			body:       `{"quantity":3}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "zeroQuantityAllowed",
			id:         known.String(),
			body:       `{"quantity":0}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missingQuantity",
			id:         known.String(),
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negativeQuantity",
			id:         known.String(),
			body:       `{"quantity":-1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "notFound",
			id:         uuid.MustParse("550e8400-e29b-41d4-a716-446655440011").String(),
			body:       `{"quantity":3}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalidID",
			id:         "42",
			body:       `{"quantity":3}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockCartRepo()
			repo.entries[known] = &CartEntry{ID: known, CustomerEmail: "a@b.com", Quantity: 1}
			router := newTestRouter(repo)

			req := httptest.NewRequest(http.MethodPatch, "/cart/quantity/"+tt.id, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("SetQuantity status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetAndDeleteEntry(t *testing.T) {
	known := uuid.MustParse("550e8400-e29b-41d4-a716-446655440012")

	repo := NewMockCartRepo()
	repo.entries[known] = &CartEntry{ID: known, CustomerEmail: "a@b.com", Quantity: 1}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/cart/"+known.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GetEntry status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/cart/"+known.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("DeleteEntry status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/cart/"+known.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GetEntry after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
