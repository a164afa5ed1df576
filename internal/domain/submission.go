package domain

import (
	"fmt"
	"time"
)

// SubmissionTable is a closed set of tables the admin API may touch.
// Table names can never be parameterized in SQL, so every dynamic table
// reference goes through this type; free-form strings are rejected at
// the parse step before any query text is assembled.
type SubmissionTable string

const (
	TableContacts SubmissionTable = "contacts"
	TableLeads    SubmissionTable = "leads"
	TableQuotes   SubmissionTable = "quote_requests"
)

func (t SubmissionTable) String() string { return string(t) }

// ParseSubmissionTable maps a request-supplied table name onto the closed
// enum. Unknown names fail before reaching SQL.
func ParseSubmissionTable(s string) (SubmissionTable, error) {
	switch SubmissionTable(s) {
	case TableContacts, TableLeads, TableQuotes:
		return SubmissionTable(s), nil
	}
	return "", fmt.Errorf("unknown table: %q", s)
}

// Per-table status sets. The first entry is the default assigned on creation.
var tableStatuses = map[SubmissionTable][]string{
	TableContacts: {"new", "read", "replied", "archived"},
	TableLeads:    {"new", "contacted", "qualified", "converted", "closed"},
	TableQuotes:   {"pending", "reviewed", "quoted", "accepted", "rejected"},
}

// StatusesFor returns the enumerated statuses valid for the table.
func StatusesFor(t SubmissionTable) []string {
	return tableStatuses[t]
}

// DefaultStatus returns the status assigned to new rows of the table.
func DefaultStatus(t SubmissionTable) string {
	return tableStatuses[t][0]
}

// ValidStatus reports whether s belongs to the table's status set.
func ValidStatus(t SubmissionTable, s string) bool {
	for _, v := range tableStatuses[t] {
		if v == s {
			return true
		}
	}
	return false
}

// Lead priorities and quote sources.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var LeadPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

var QuoteSources = []string{"website", "referral", "campaign", "other"}

// Contact is a contact-form submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lead is a lead-form submission with a sales priority.
type Lead struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Requirement string    `json:"requirement"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuoteRequest is a quote-request submission with an acquisition source.
type QuoteRequest struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	ProjectDescription string    `json:"project_description"`
	BudgetRange        string    `json:"budget_range,omitempty"`
	Source             string    `json:"source"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
