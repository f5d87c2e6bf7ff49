package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"sale-catalog/pkg/catalog"
	"sale-catalog/pkg/labels"
)

// follows RFC 7807: Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func (pd *ProblemDetails) Error() string {
	return fmt.Sprintf("%d %s: %s", pd.Status, pd.Title, pd.Detail)
}

func WriteError(w http.ResponseWriter, status int, detail, instance string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	pd := &ProblemDetails{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}

	if err := json.NewEncoder(w).Encode(pd); err != nil {
		log.Printf("[API] Failed to encode problem details: %v", err)
	}
}

func WriteBadRequest(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusBadRequest, detail, instance)
}

func WriteMethodNotAllowed(w http.ResponseWriter, allowed, instance string) {
	w.Header().Set("Allow", allowed)
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed. Use "+allowed+".", instance)
}

// StatusFor maps pipeline errors onto HTTP status codes: bad label types are
// the caller's fault, upstream trouble is a gateway error, and anything else
// (bad colours, currencies or amounts in the feed) is ours.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, labels.ErrUnknownStyle):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		if isTimeout(err) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func WriteProblem(w http.ResponseWriter, err error, instance string) {
	WriteError(w, StatusFor(err), err.Error(), instance)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
