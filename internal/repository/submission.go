package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/northstack/leadgen/internal/domain"
)

// PgSubmissionRepository implements SubmissionRepository using pgx.
type PgSubmissionRepository struct{}

// NewPgSubmissionRepository creates a new PgSubmissionRepository.
func NewPgSubmissionRepository() *PgSubmissionRepository {
	return &PgSubmissionRepository{}
}

// List runs the filtered, paginated row query for the entity.
func (r *PgSubmissionRepository) List(ctx context.Context, db DBTX, cfg ListingConfig, filters map[string]string, limit, offset int) ([]any, error) {
	sql, args := BuildListQuery(cfg, filters, limit, offset)

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		row, err := cfg.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count returns the total number of rows matching the same filters.
func (r *PgSubmissionRepository) Count(ctx context.Context, db DBTX, cfg ListingConfig, filters map[string]string) (int64, error) {
	sql, args := BuildCountQuery(cfg, filters)

	var total int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Stats queries the entity's aggregate view. The statement is a fixed
// string; nothing request-supplied reaches it. Column names come from the
// view, so the row is returned as a map.
func (r *PgSubmissionRepository) Stats(ctx context.Context, db DBTX, cfg ListingConfig) (map[string]any, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+cfg.StatsView)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return map[string]any{}, rows.Err()
	}

	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]any, len(values))
	for i, fd := range rows.FieldDescriptions() {
		stats[fd.Name] = values[i]
	}
	return stats, rows.Err()
}

// UpdateStatus performs the single conditional update. The table name is a
// compile-time literal reached through the SubmissionTable enum; it is never
// concatenated from request input. Returns nil when no row matched.
func (r *PgSubmissionRepository) UpdateStatus(ctx context.Context, db DBTX, cfg ListingConfig, id int64, status string) (any, error) {
	sql := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = now() WHERE id = $2 RETURNING %s",
		cfg.Table.String(), strings.Join(cfg.Columns, ", "))

	rows, err := db.Query(ctx, sql, status, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	row, err := cfg.Scan(rows)
	if err != nil {
		return nil, err
	}
	return row, rows.Err()
}

// CreateContact inserts a contact submission.
func (r *PgSubmissionRepository) CreateContact(ctx context.Context, db DBTX, c *domain.Contact) error {
	return db.QueryRow(ctx, `
		INSERT INTO contacts (name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Message, domain.DefaultStatus(domain.TableContacts),
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

// CreateLead inserts a lead submission.
func (r *PgSubmissionRepository) CreateLead(ctx context.Context, db DBTX, l *domain.Lead) error {
	return db.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, company, requirement, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at`,
		l.Name, l.Email, l.Phone, l.Company, l.Requirement, l.Priority, domain.DefaultStatus(domain.TableLeads),
	).Scan(&l.ID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
}

// CreateQuote inserts a quote request.
func (r *PgSubmissionRepository) CreateQuote(ctx context.Context, db DBTX, q *domain.QuoteRequest) error {
	return db.QueryRow(ctx, `
		INSERT INTO quote_requests (name, email, phone, project_description, budget_range, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at`,
		q.Name, q.Email, q.Phone, q.ProjectDescription, q.BudgetRange, q.Source, domain.DefaultStatus(domain.TableQuotes),
	).Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt)
}
