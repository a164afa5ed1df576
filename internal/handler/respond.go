package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/service"
)

type exposeErrorsKey struct{}

// ErrorExposure returns middleware that marks requests whose 500 bodies
// may carry underlying causes. Enabled only for local development via
// config; the flag rides the request context so routers with different
// settings never interfere.
func ErrorExposure(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expose {
				r = r.WithContext(context.WithValue(r.Context(), exposeErrorsKey{}, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func exposeErrors(ctx context.Context) bool {
	v, _ := ctx.Value(exposeErrorsKey{}).(bool)
	return v
}

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
	Statistics map[string]any      `json:"statistics,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondSuccess writes a success envelope around data.
func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondList writes a success envelope with pagination and statistics blocks.
func RespondList(w http.ResponseWriter, result *service.ListResult) {
	RespondJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       result.Rows,
		Pagination: &result.Pagination,
		Statistics: result.Statistics,
	})
}

// RespondError writes an error envelope, detecting domain.AppError for
// status codes. Non-AppError values and internal failures collapse to a
// generic 500 body unless the request carries the error-exposure mark.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	expose := exposeErrors(r.Context())
	if appErr, ok := err.(*domain.AppError); ok {
		msg := appErr.Message
		if appErr.Status == http.StatusInternalServerError {
			if expose && appErr.Cause != nil {
				msg = appErr.Cause.Error()
			} else {
				msg = "internal server error"
			}
		}
		RespondJSON(w, appErr.Status, Envelope{
			Success: false,
			Message: msg,
			Errors:  appErr.Errors,
		})
		return
	}
	msg := "internal server error"
	if expose && err != nil {
		msg = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: msg})
}

// DecodeJSON reads and decodes a JSON request body into dst. Bodies over
// 1 MiB are rejected.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// ClientIP extracts the originating client IP, preferring the first entry
// of X-Forwarded-For over RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
