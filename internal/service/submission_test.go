package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/repository"
)

type fakeSubmissionRepo struct {
	rows     []any
	total    int64
	stats    map[string]any
	updated  any
	calls    int
	contacts []*domain.Contact
	leads    []*domain.Lead
	quotes   []*domain.QuoteRequest

	lastCfg     repository.ListingConfig
	lastFilters map[string]string
	lastStatus  string
}

func (f *fakeSubmissionRepo) List(_ context.Context, _ repository.DBTX, cfg repository.ListingConfig, filters map[string]string, _, _ int) ([]any, error) {
	f.calls++
	f.lastCfg = cfg
	f.lastFilters = filters
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

func (f *fakeSubmissionRepo) UpdateStatus(_ context.Context, _ repository.DBTX, cfg repository.ListingConfig, _ int64, status string) (any, error) {
	f.calls++
	f.lastCfg = cfg
	f.lastStatus = status
	return f.updated, nil
}

func (f *fakeSubmissionRepo) CreateContact(_ context.Context, _ repository.DBTX, c *domain.Contact) error {
	c.ID = int64(len(f.contacts) + 1)
	c.Status = domain.DefaultStatus(domain.TableContacts)
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeSubmissionRepo) CreateLead(_ context.Context, _ repository.DBTX, l *domain.Lead) error {
	l.ID = int64(len(f.leads) + 1)
	l.Status = domain.DefaultStatus(domain.TableLeads)
	f.leads = append(f.leads, l)
	return nil
}

func (f *fakeSubmissionRepo) CreateQuote(_ context.Context, _ repository.DBTX, q *domain.QuoteRequest) error {
	q.ID = int64(len(f.quotes) + 1)
	q.Status = domain.DefaultStatus(domain.TableQuotes)
	f.quotes = append(f.quotes, q)
	return nil
}

type fakePublisher struct {
	topics []string
	keys   []string
	fail   bool
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key, _ []byte) error {
	if f.fail {
		return errors.New("broker unreachable")
	}
	f.topics = append(f.topics, topic)
	f.keys = append(f.keys, string(key))
	return nil
}

func newSubmissionFixture() (*SubmissionService, *fakeSubmissionRepo, *fakePublisher) {
	repo := &fakeSubmissionRepo{stats: map[string]any{"total": int64(0)}}
	pub := &fakePublisher{}
	svc := NewSubmissionService(nil, repo, pub, slog.Default())
	return svc, repo, pub
}

func TestList_Pagination(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		limit   int
		offset  int
		hasMore bool
	}{
		{"more pages remain", 8, 2, 0, true},
		{"exact boundary", 8, 2, 6, false},
		{"offset past end", 8, 2, 10, false},
		{"everything on one page", 3, 100, 0, false},
		{"one below boundary", 8, 2, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newSubmissionFixture()
			repo.total = tt.total
			repo.rows = []any{&domain.Contact{ID: 1}}

			result, err := svc.List(context.Background(), domain.TableContacts, nil, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.total, result.Pagination.Total)
			assert.Equal(t, tt.limit, result.Pagination.Limit)
			assert.Equal(t, tt.offset, result.Pagination.Offset)
			assert.Equal(t, tt.hasMore, result.Pagination.HasMore)
		})
	}
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc, repo, _ := newSubmissionFixture()
	repo.rows = nil

	result, err := svc.List(context.Background(), domain.TableLeads, nil, 100, 0)
	require.NoError(t, err)
	assert.NotNil(t, result.Rows)
	assert.Empty(t, result.Rows)
}

func TestList_PassesFiltersAndConfig(t *testing.T) {
	svc, repo, _ := newSubmissionFixture()
	filters := map[string]string{"status": "new", "priority": "high"}

	_, err := svc.List(context.Background(), domain.TableLeads, filters, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TableLeads, repo.lastCfg.Table)
	assert.Equal(t, filters, repo.lastFilters)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("missing fields accumulate", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		_, err := svc.UpdateStatus(context.Background(), "", 0, "")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Len(t, appErr.Errors, 3)
		assert.Zero(t, repo.calls, "no SQL on validation failure")
	})

	t.Run("table outside allow-list rejected before any SQL", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		_, err := svc.UpdateStatus(context.Background(), "users", 1, "new")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Invalid table name", appErr.Message)
		assert.Zero(t, repo.calls)
	})

	t.Run("status outside the table's set rejected", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		_, err := svc.UpdateStatus(context.Background(), "contacts", 1, "qualified")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		assert.Zero(t, repo.calls)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()
		repo.updated = nil

		_, err := svc.UpdateStatus(context.Background(), "contacts", 9999, "replied")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})

	t.Run("success returns updated row", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()
		repo.updated = &domain.Contact{ID: 7, Status: "replied"}

		row, err := svc.UpdateStatus(context.Background(), "contacts", 7, "replied")
		require.NoError(t, err)
		assert.Equal(t, repo.updated, row)
		assert.Equal(t, "replied", repo.lastStatus)
		assert.Equal(t, domain.TableContacts, repo.lastCfg.Table)
	})
}

func TestCreateContact(t *testing.T) {
	t.Run("accumulates every violated rule", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		_, err := svc.CreateContact(context.Background(), ContactInput{Phone: "abc"})

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		// name, email, phone, message all violated
		assert.Len(t, appErr.Errors, 4)
		assert.Empty(t, repo.contacts)
	})

	t.Run("valid submission stored and event published", func(t *testing.T) {
		svc, repo, pub := newSubmissionFixture()

		c, err := svc.CreateContact(context.Background(), ContactInput{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Tell me more",
		})
		require.NoError(t, err)
		assert.Equal(t, "new", c.Status)
		require.Len(t, repo.contacts, 1)
		assert.Equal(t, []string{SubmissionTopic}, pub.topics)
		assert.Equal(t, []string{"contacts"}, pub.keys)
	})

	t.Run("publisher failure does not fail the submission", func(t *testing.T) {
		svc, repo, pub := newSubmissionFixture()
		pub.fail = true

		_, err := svc.CreateContact(context.Background(), ContactInput{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Tell me more",
		})
		require.NoError(t, err)
		assert.Len(t, repo.contacts, 1)
	})
}

func TestCreateLead(t *testing.T) {
	t.Run("priority defaults to medium", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		l, err := svc.CreateLead(context.Background(), LeadInput{
			Name:        "Bo",
			Email:       "bo@example.com",
			Requirement: "New website",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, l.Priority)
		assert.Len(t, repo.leads, 1)
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		svc, _, _ := newSubmissionFixture()

		_, err := svc.CreateLead(context.Background(), LeadInput{
			Name:        "Bo",
			Email:       "bo@example.com",
			Requirement: "New website",
			Priority:    "urgent",
		})

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Errors, "invalid priority")
	})
}

func TestCreateQuote(t *testing.T) {
	t.Run("source defaults to website", func(t *testing.T) {
		svc, repo, _ := newSubmissionFixture()

		q, err := svc.CreateQuote(context.Background(), QuoteInput{
			Name:               "Cy",
			Email:              "cy@example.com",
			ProjectDescription: "Storefront rebuild",
		})
		require.NoError(t, err)
		assert.Equal(t, "website", q.Source)
		assert.Equal(t, "pending", q.Status)
		assert.Len(t, repo.quotes, 1)
	})

	t.Run("invalid source rejected", func(t *testing.T) {
		svc, _, _ := newSubmissionFixture()

		_, err := svc.CreateQuote(context.Background(), QuoteInput{
			Name:               "Cy",
			Email:              "cy@example.com",
			ProjectDescription: "Storefront rebuild",
			Source:             "telepathy",
		})

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Errors, "invalid source")
	})
}
