package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/repository"
)

// SubmissionTopic is the Kafka topic carrying submission-created events.
const SubmissionTopic = "leadgen.submissions"

// EventPublisher publishes domain events. Satisfied by infra.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// SubmissionService handles public form submissions and the admin listing
// and status-update operations over them.
type SubmissionService struct {
	pool      *pgxpool.Pool
	subs      repository.SubmissionRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(pool *pgxpool.Pool, subs repository.SubmissionRepository, publisher EventPublisher, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{pool: pool, subs: subs, publisher: publisher, logger: logger}
}

// Pagination is the metadata block returned with every list response.
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	// HasMore is true when offset+limit < total.
	HasMore bool `json:"hasMore"`
}

// ListResult bundles rows, pagination and the entity's aggregate statistics.
// The three queries run sequentially without a transaction; a statistics
// block slightly stale relative to the rows is tolerated.
type ListResult struct {
	Rows       []any
	Pagination Pagination
	Statistics map[string]any
}

// List runs the filtered, paginated, counted, stat-enriched list for a
// submission table. Limit and offset are assumed validated by the caller.
func (s *SubmissionService) List(ctx context.Context, table domain.SubmissionTable, filters map[string]string, limit, offset int) (*ListResult, error) {
	cfg := repository.ListingFor(table)

	rows, err := s.subs.List(ctx, s.pool, cfg, filters, limit, offset)
	if err != nil {
		return nil, domain.ErrInternal("list "+table.String(), err)
	}
	if rows == nil {
		rows = []any{}
	}

	total, err := s.subs.Count(ctx, s.pool, cfg, filters)
	if err != nil {
		return nil, domain.ErrInternal("count "+table.String(), err)
	}

	stats, err := s.subs.Stats(ctx, s.pool, cfg)
	if err != nil {
		return nil, domain.ErrInternal("stats "+table.String(), err)
	}

	return &ListResult{
		Rows: rows,
		Pagination: Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+limit) < total,
		},
		Statistics: stats,
	}, nil
}

// UpdateStatus validates the target table against the closed allow-list and
// the status against the table's enumerated set, then applies the single
// conditional update. The allow-list check happens before any SQL text for
// the update is assembled.
func (s *SubmissionService) UpdateStatus(ctx context.Context, tableName string, id int64, status string) (any, error) {
	var missing []string
	if tableName == "" {
		missing = append(missing, "table is required")
	}
	if id <= 0 {
		missing = append(missing, "id is required")
	}
	if status == "" {
		missing = append(missing, "status is required")
	}
	if len(missing) > 0 {
		return nil, domain.ErrValidationList(missing)
	}

	table, err := domain.ParseSubmissionTable(tableName)
	if err != nil {
		return nil, domain.ErrValidation("Invalid table name")
	}

	if !domain.ValidStatus(table, status) {
		return nil, domain.ErrValidation(fmt.Sprintf("Invalid status %q for %s; allowed: %s",
			status, table, strings.Join(domain.StatusesFor(table), ", ")))
	}

	row, err := s.subs.UpdateStatus(ctx, s.pool, repository.ListingFor(table), id, status)
	if err != nil {
		return nil, domain.ErrInternal("update status", err)
	}
	if row == nil {
		return nil, domain.ErrNotFound("record", fmt.Sprintf("%d", id))
	}
	return row, nil
}

// ContactInput holds a public contact-form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateContact validates and stores a contact submission. Validation
// accumulates every violated rule before failing.
func (s *SubmissionService) CreateContact(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	var errs []string
	collect(&errs, domain.ValidateRequired("name", input.Name))
	collect(&errs, domain.ValidateEmail(input.Email))
	collect(&errs, domain.ValidatePhone(input.Phone))
	collect(&errs, domain.ValidateRequired("message", input.Message))
	if len(errs) > 0 {
		return nil, domain.ErrValidationList(errs)
	}

	c := &domain.Contact{Name: input.Name, Email: input.Email, Phone: input.Phone, Message: input.Message}
	if err := s.subs.CreateContact(ctx, s.pool, c); err != nil {
		return nil, domain.ErrInternal("create contact", err)
	}

	s.notify(ctx, domain.TableContacts, c.ID, c.Email)
	return c, nil
}

// LeadInput holds a public lead-form submission.
type LeadInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Requirement string `json:"requirement"`
	Priority    string `json:"priority"`
}

// CreateLead validates and stores a lead submission.
func (s *SubmissionService) CreateLead(ctx context.Context, input LeadInput) (*domain.Lead, error) {
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}

	var errs []string
	collect(&errs, domain.ValidateRequired("name", input.Name))
	collect(&errs, domain.ValidateEmail(input.Email))
	collect(&errs, domain.ValidatePhone(input.Phone))
	collect(&errs, domain.ValidateRequired("requirement", input.Requirement))
	if !contains(domain.LeadPriorities, input.Priority) {
		errs = append(errs, "invalid priority")
	}
	if len(errs) > 0 {
		return nil, domain.ErrValidationList(errs)
	}

	l := &domain.Lead{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Company:     input.Company,
		Requirement: input.Requirement,
		Priority:    input.Priority,
	}
	if err := s.subs.CreateLead(ctx, s.pool, l); err != nil {
		return nil, domain.ErrInternal("create lead", err)
	}

	s.notify(ctx, domain.TableLeads, l.ID, l.Email)
	return l, nil
}

// QuoteInput holds a public quote-request submission.
type QuoteInput struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ProjectDescription string `json:"project_description"`
	BudgetRange        string `json:"budget_range"`
	Source             string `json:"source"`
}

// CreateQuote validates and stores a quote request.
func (s *SubmissionService) CreateQuote(ctx context.Context, input QuoteInput) (*domain.QuoteRequest, error) {
	if input.Source == "" {
		input.Source = domain.QuoteSources[0]
	}

	var errs []string
	collect(&errs, domain.ValidateRequired("name", input.Name))
	collect(&errs, domain.ValidateEmail(input.Email))
	collect(&errs, domain.ValidatePhone(input.Phone))
	collect(&errs, domain.ValidateRequired("project_description", input.ProjectDescription))
	if !contains(domain.QuoteSources, input.Source) {
		errs = append(errs, "invalid source")
	}
	if len(errs) > 0 {
		return nil, domain.ErrValidationList(errs)
	}

	q := &domain.QuoteRequest{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		ProjectDescription: input.ProjectDescription,
		BudgetRange:        input.BudgetRange,
		Source:             input.Source,
	}
	if err := s.subs.CreateQuote(ctx, s.pool, q); err != nil {
		return nil, domain.ErrInternal("create quote request", err)
	}

	s.notify(ctx, domain.TableQuotes, q.ID, q.Email)
	return q, nil
}

// notify publishes a submission-created event. Fire-and-forget: a broker
// failure is logged, never surfaced to the submitter.
func (s *SubmissionService) notify(ctx context.Context, table domain.SubmissionTable, id int64, email string) {
	if s.publisher == nil {
		return
	}
	event, err := json.Marshal(map[string]any{
		"table":      table.String(),
		"id":         id,
		"email":      email,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, SubmissionTopic, []byte(table.String()), event); err != nil {
		s.logger.Warn("publish submission event failed", "table", table.String(), "id", id, "error", err)
	}
}

func collect(errs *[]string, err error) {
	if err != nil {
		*errs = append(*errs, err.Error())
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
