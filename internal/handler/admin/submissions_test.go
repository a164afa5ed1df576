package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/handler"
	"github.com/northstack/leadgen/internal/repository"
	"github.com/northstack/leadgen/internal/service"
)

type fakeSubmissionRepo struct {
	rows    []any
	total   int64
	stats   map[string]any
	updated any
	calls   int

	lastFilters map[string]string
	lastLimit   int
	lastOffset  int
}

func (f *fakeSubmissionRepo) List(_ context.Context, _ repository.DBTX, _ repository.ListingConfig, filters map[string]string, limit, offset int) ([]any, error) {
	f.calls++
	f.lastFilters = filters
	f.lastLimit = limit
	f.lastOffset = offset
	return f.rows, nil
}

func (f *fakeSubmissionRepo) Count(_ context.Context, _ repository.DBTX, _ repository.ListingConfig, _ map[string]string) (int64, error) {
	f.calls++
	return f.total, nil
}

func (f *fakeSubmissionRepo) Stats(_ context.Context, _ repository.DBTX, _ repository.ListingConfig) (map[string]any, error) {
	f.calls++
	return f.stats, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(_ context.Context, _ repository.DBTX, _ repository.ListingConfig, _ int64, _ string) (any, error) {
	f.calls++
	return f.updated, nil
}

func (f *fakeSubmissionRepo) CreateContact(_ context.Context, _ repository.DBTX, _ *domain.Contact) error {
	return nil
}

func (f *fakeSubmissionRepo) CreateLead(_ context.Context, _ repository.DBTX, _ *domain.Lead) error {
	return nil
}

func (f *fakeSubmissionRepo) CreateQuote(_ context.Context, _ repository.DBTX, _ *domain.QuoteRequest) error {
	return nil
}

func newAdminFixture() (*SubmissionAdminHandler, *StatusAdminHandler, *fakeSubmissionRepo) {
	repo := &fakeSubmissionRepo{stats: map[string]any{"total": int64(0)}}
	svc := service.NewSubmissionService(nil, repo, nil, slog.Default())
	return NewSubmissionAdminHandler(svc), NewStatusAdminHandler(svc), repo
}

func TestListContacts(t *testing.T) {
	t.Run("paginated page with filter", func(t *testing.T) {
		h, _, repo := newAdminFixture()
		repo.rows = []any{&domain.Contact{ID: 1, Status: "new"}, &domain.Contact{ID: 2, Status: "new"}}
		repo.total = 5

		r := httptest.NewRequest(http.MethodGet, "/api-admin/contacts?status=new&limit=2&offset=0", nil)
		w := httptest.NewRecorder()
		h.ListContacts(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var body handler.Envelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.True(t, body.Success)
		require.NotNil(t, body.Pagination)
		assert.Equal(t, int64(5), body.Pagination.Total)
		assert.True(t, body.Pagination.HasMore)
		assert.Equal(t, map[string]string{"status": "new"}, repo.lastFilters)
		assert.Equal(t, 2, repo.lastLimit)
	})

	t.Run("defaults applied when params absent", func(t *testing.T) {
		h, _, repo := newAdminFixture()

		r := httptest.NewRequest(http.MethodGet, "/api-admin/contacts", nil)
		w := httptest.NewRecorder()
		h.ListContacts(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, repository.DefaultLimit, repo.lastLimit)
		assert.Equal(t, 0, repo.lastOffset)
	})

	t.Run("undeclared filter keys are ignored", func(t *testing.T) {
		h, _, repo := newAdminFixture()

		r := httptest.NewRequest(http.MethodGet, "/api-admin/contacts?priority=high&status=read", nil)
		w := httptest.NewRecorder()
		h.ListContacts(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]string{"status": "read"}, repo.lastFilters)
	})

	t.Run("malformed pagination rejected before any query", func(t *testing.T) {
		tests := []struct {
			name  string
			query string
		}{
			{"non-numeric limit", "?limit=abc"},
			{"zero limit", "?limit=0"},
			{"limit above ceiling", "?limit=501"},
			{"negative offset", "?offset=-1"},
			{"non-numeric offset", "?offset=x"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h, _, repo := newAdminFixture()
				r := httptest.NewRequest(http.MethodGet, "/api-admin/contacts"+tt.query, nil)
				w := httptest.NewRecorder()
				h.ListContacts(w, r)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Zero(t, repo.calls)
			})
		}
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	patch := func(payload string) *http.Request {
		return httptest.NewRequest(http.MethodPatch, "/api-admin/status", bytes.NewBufferString(payload))
	}

	t.Run("success returns updated row", func(t *testing.T) {
		_, h, repo := newAdminFixture()
		repo.updated = &domain.Contact{ID: 7, Status: "replied"}

		w := httptest.NewRecorder()
		h.UpdateStatus(w, patch(`{"table":"contacts","id":7,"status":"replied"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var body handler.Envelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.True(t, body.Success)
	})

	t.Run("unknown table rejected without touching the database", func(t *testing.T) {
		_, h, repo := newAdminFixture()

		w := httptest.NewRecorder()
		h.UpdateStatus(w, patch(`{"table":"users","id":1,"status":"new"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body handler.Envelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Invalid table name", body.Message)
		assert.Zero(t, repo.calls)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		_, h, repo := newAdminFixture()
		repo.updated = nil

		w := httptest.NewRecorder()
		h.UpdateStatus(w, patch(`{"table":"leads","id":9999,"status":"contacted"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		_, h, _ := newAdminFixture()

		w := httptest.NewRecorder()
		h.UpdateStatus(w, patch(`{broken`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
