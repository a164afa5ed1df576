package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/northstack/leadgen/internal/domain"
)

// Pagination bounds enforced on caller-supplied values.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// ListingConfig describes one submission entity to the shared list query.
// The three admin list endpoints differ only in this configuration.
type ListingConfig struct {
	Table domain.SubmissionTable

	// Columns is the fixed projection for the row query; never SELECT *.
	Columns []string

	// Filters are the filter keys the entity accepts, in the order their
	// placeholders are appended. Every filter is a plain equality predicate.
	Filters []string

	// StatsView is the per-entity aggregate view queried with a fixed,
	// unparameterized statement.
	StatsView string

	// Scan reads one row of the Columns projection.
	Scan func(rows pgx.Rows) (any, error)
}

var (
	// ContactsListing drives GET /api-admin/contacts.
	ContactsListing = ListingConfig{
		Table:     domain.TableContacts,
		Columns:   []string{"id", "name", "email", "phone", "message", "status", "created_at", "updated_at"},
		Filters:   []string{"status"},
		StatsView: "contact_stats",
		Scan: func(rows pgx.Rows) (any, error) {
			var c domain.Contact
			err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt)
			return &c, err
		},
	}

	// LeadsListing drives GET /api-admin/leads.
	LeadsListing = ListingConfig{
		Table:     domain.TableLeads,
		Columns:   []string{"id", "name", "email", "phone", "company", "requirement", "priority", "status", "created_at", "updated_at"},
		Filters:   []string{"status", "priority"},
		StatsView: "lead_stats",
		Scan: func(rows pgx.Rows) (any, error) {
			var l domain.Lead
			err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Requirement, &l.Priority, &l.Status, &l.CreatedAt, &l.UpdatedAt)
			return &l, err
		},
	}

	// QuotesListing drives GET /api-admin/quotes.
	QuotesListing = ListingConfig{
		Table:     domain.TableQuotes,
		Columns:   []string{"id", "name", "email", "phone", "project_description", "budget_range", "source", "status", "created_at", "updated_at"},
		Filters:   []string{"status", "source"},
		StatsView: "quote_request_stats",
		Scan: func(rows pgx.Rows) (any, error) {
			var q domain.QuoteRequest
			err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.ProjectDescription, &q.BudgetRange, &q.Source, &q.Status, &q.CreatedAt, &q.UpdatedAt)
			return &q, err
		},
	}
)

// ListingFor returns the listing config for a submission table.
func ListingFor(t domain.SubmissionTable) ListingConfig {
	switch t {
	case domain.TableLeads:
		return LeadsListing
	case domain.TableQuotes:
		return QuotesListing
	default:
		return ContactsListing
	}
}

// BuildListQuery constructs the parameterized row query and its argument
// list. Filter values are only ever bound through positional parameters;
// the query text carries nothing request-supplied. Arguments are appended
// in exactly the order their placeholders appear, with LIMIT and OFFSET
// placeholders numbered after the filter parameters.
func BuildListQuery(cfg ListingConfig, filters map[string]string, limit, offset int) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cfg.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(cfg.Table.String())

	args := appendFilterClauses(&b, cfg, filters)

	b.WriteString(" ORDER BY created_at DESC")

	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

// BuildCountQuery constructs the COUNT(*) query reusing the same filter
// predicates but no pagination.
func BuildCountQuery(cfg ListingConfig, filters map[string]string) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(cfg.Table.String())
	args := appendFilterClauses(&b, cfg, filters)
	return b.String(), args
}

// appendFilterClauses writes the WHERE clause for every allowed filter that
// is present and non-empty. Unknown or absent filters are simply omitted.
func appendFilterClauses(b *strings.Builder, cfg ListingConfig, filters map[string]string) []any {
	var args []any
	for _, key := range cfg.Filters {
		v, ok := filters[key]
		if !ok || v == "" {
			continue
		}
		args = append(args, v)
		if len(args) == 1 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(b, "%s = $%d", key, len(args))
	}
	return args
}
