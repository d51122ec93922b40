package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// APIError is returned when the catalog answers with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string // server-provided "detail", or a snippet of the body
	RequestID  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("catalog: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// parseDetail extracts the "detail" field of an error body. Validation
// errors carry a structured detail, which is kept as compact JSON.
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil {
			return s
		}
		return string(env.Detail)
	}
	return truncate(strings.TrimSpace(string(body)), 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
