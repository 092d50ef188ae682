package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error)
	byContFn func(ctx context.Context, contractorID uuid.UUID) ([]documents.Document, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*documents.Document, error)
	createFn func(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error)
	writeFn  func(ctx context.Context, cmd documents.VerificationCommand) (*documents.Document, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler(maxUploadSize int64) *documents.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) ByContractor(ctx context.Context, contractorID uuid.UUID) ([]documents.Document, error) {
	return m.byContFn(ctx, contractorID)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) WriteVerification(ctx context.Context, cmd documents.VerificationCommand) (*documents.Document, error) {
	return m.writeFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys documents.System) *documents.Handler {
	return documents.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		50*1024*1024,
	)
}

func setupMux(h *documents.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleDoc() documents.Document {
	contractorID := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	return documents.Document{
		ID:           uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		ContractorID: contractorID,
		Type:         documents.TypeTaxClearance,
		Name:         "Tax Clearance Certificate",
		Filename:     "tax-clearance.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    98304,
		PageCount:    ptr(2),
		StorageKey:   "contractors/7c9e6679-7425-40de-944b-e07fc1f90ae7/documents/550e8400-e29b-41d4-a716-446655440000/tax-clearance.pdf",
		Status:       documents.StatusPending,
		ExpiryDate:   ptr(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)),
		CreatedAt:    time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	doc := sampleDoc()
	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
			result := pagination.NewPageResult([]documents.Document{doc}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/documents?status=pending", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var result pagination.PageResult[documents.Document]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result: got total %d, %d items; want 1, 1", result.Total, len(result.Data))
	}
	if result.Data[0].ID != doc.ID {
		t.Errorf("doc id: got %s, want %s", result.Data[0].ID, doc.ID)
	}
}

func TestHandlerFind(t *testing.T) {
	doc := sampleDoc()

	t.Run("found", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
				return &doc, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents/"+doc.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
				return nil, documents.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestHandlerByContractor(t *testing.T) {
	doc := sampleDoc()
	sys := &mockSystem{
		byContFn: func(ctx context.Context, contractorID uuid.UUID) ([]documents.Document, error) {
			if contractorID != doc.ContractorID {
				t.Errorf("contractor id: got %s, want %s", contractorID, doc.ContractorID)
			}
			return []documents.Document{doc}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/documents/contractor/"+doc.ContractorID.String(), nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var docs []documents.Document
	if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("docs length: got %d, want 1", len(docs))
	}
}

func TestHandlerSearch(t *testing.T) {
	doc := sampleDoc()

	var gotFilters documents.Filters
	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
			gotFilters = filters
			result := pagination.NewPageResult([]documents.Document{doc}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	body := `{"page": 1, "page_size": 10, "status": "pending", "expiry": "expiring"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/documents/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotFilters.Status == nil || *gotFilters.Status != documents.StatusPending {
		t.Errorf("filter status: got %v, want pending", gotFilters.Status)
	}
	if gotFilters.Expiry != documents.ExpiryExpiring {
		t.Errorf("filter expiry: got %v, want expiring", gotFilters.Expiry)
	}
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	doc := sampleDoc()

	t.Run("valid upload", func(t *testing.T) {
		var gotCmd documents.CreateCommand
		sys := &mockSystem{
			createFn: func(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
				gotCmd = cmd
				return &doc, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, contentType := multipartUpload(t, map[string]string{
			"contractor_id": doc.ContractorID.String(),
			"type":          "tax_clearance",
			"name":          "Tax Clearance Certificate",
			"expiry_date":   "2026-12-31",
		}, "tax-clearance.pdf", []byte("file content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201, body %s", rec.Code, rec.Body.String())
		}
		if gotCmd.ContractorID != doc.ContractorID {
			t.Errorf("contractor id: got %s, want %s", gotCmd.ContractorID, doc.ContractorID)
		}
		if gotCmd.Type != documents.TypeTaxClearance {
			t.Errorf("type: got %s, want tax_clearance", gotCmd.Type)
		}
		if gotCmd.ExpiryDate == nil || !gotCmd.ExpiryDate.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expiry date: got %v, want 2026-12-31", gotCmd.ExpiryDate)
		}
	})

	t.Run("unknown document type", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		body, contentType := multipartUpload(t, map[string]string{
			"contractor_id": doc.ContractorID.String(),
			"type":          "drivers_license",
			"name":          "License",
		}, "license.pdf", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("malformed expiry date", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		body, contentType := multipartUpload(t, map[string]string{
			"contractor_id": doc.ContractorID.String(),
			"type":          "insurance",
			"name":          "Policy",
			"expiry_date":   "31/12/2026",
		}, "policy.pdf", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		body, contentType := multipartUpload(t, map[string]string{
			"contractor_id": doc.ContractorID.String(),
			"type":          "insurance",
		}, "policy.pdf", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/documents/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want 204", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return documents.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/documents/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestHandlerRoutes(t *testing.T) {
	h := newTestHandler(&mockSystem{})
	group := h.Routes()

	if group.Prefix != "/documents" {
		t.Errorf("prefix: got %s, want /documents", group.Prefix)
	}
	if len(group.Routes) != 6 {
		t.Errorf("routes: got %d, want 6", len(group.Routes))
	}
}
