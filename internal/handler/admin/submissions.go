package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/handler"
	"github.com/northstack/leadgen/internal/repository"
	"github.com/northstack/leadgen/internal/service"
)

// SubmissionAdminHandler handles the admin listing endpoints for contacts,
// leads and quote requests.
type SubmissionAdminHandler struct {
	subSvc *service.SubmissionService
}

// NewSubmissionAdminHandler creates a new SubmissionAdminHandler.
func NewSubmissionAdminHandler(subSvc *service.SubmissionService) *SubmissionAdminHandler {
	return &SubmissionAdminHandler{subSvc: subSvc}
}

// ListContacts handles GET /api-admin/contacts.
func (h *SubmissionAdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repository.ContactsListing)
}

// ListLeads handles GET /api-admin/leads.
func (h *SubmissionAdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repository.LeadsListing)
}

// ListQuotes handles GET /api-admin/quotes.
func (h *SubmissionAdminHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repository.QuotesListing)
}

func (h *SubmissionAdminHandler) list(w http.ResponseWriter, r *http.Request, cfg repository.ListingConfig) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	// Only keys the entity declares become predicates; anything else in
	// the query string is ignored.
	filters := make(map[string]string, len(cfg.Filters))
	for _, key := range cfg.Filters {
		if v := r.URL.Query().Get(key); v != "" {
			filters[key] = v
		}
	}

	result, err := h.subSvc.List(r.Context(), cfg.Table, filters, limit, offset)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondList(w, result)
}

// parsePagination reads limit and offset from the query string, applying
// defaults when absent and rejecting malformed or out-of-range values.
func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = repository.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > repository.MaxLimit {
			return 0, 0, domain.ErrValidation(
				fmt.Sprintf("limit must be an integer between 1 and %d", repository.MaxLimit))
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, domain.ErrValidation("offset must be a non-negative integer")
		}
	}

	return limit, offset, nil
}
