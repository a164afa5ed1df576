package handler

import (
	"net/http"

	"github.com/northstack/leadgen/internal/guard"
	"github.com/northstack/leadgen/internal/service"
)

// SubmissionHandler handles the public form endpoints.
type SubmissionHandler struct {
	subSvc  *service.SubmissionService
	limiter *guard.RateLimiter
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(subSvc *service.SubmissionService, limiter *guard.RateLimiter) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc, limiter: limiter}
}

func (h *SubmissionHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	if h.limiter.Allow(ClientIP(r)) {
		return true
	}
	RespondJSON(w, http.StatusTooManyRequests, Envelope{
		Success: false,
		Message: "Too many submissions, please try again later",
	})
	return false
}

// CreateContact handles POST /contact.
func (h *SubmissionHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	var input service.ContactInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "invalid request body"})
		return
	}
	contact, err := h.subSvc.CreateContact(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, contact)
}

// CreateLead handles POST /lead.
func (h *SubmissionHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	var input service.LeadInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "invalid request body"})
		return
	}
	lead, err := h.subSvc.CreateLead(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, lead)
}

// CreateQuote handles POST /quote.
func (h *SubmissionHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	var input service.QuoteInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "invalid request body"})
		return
	}
	quote, err := h.subSvc.CreateQuote(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, quote)
}
