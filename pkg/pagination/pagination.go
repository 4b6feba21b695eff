package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

type Page struct {
	Limit  int
	Offset int
}

// FromRequest reads limit/offset query params with clamped defaults.
func FromRequest(r *http.Request) Page {
	page := Page{Limit: DefaultLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			page.Limit = limit
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			page.Offset = offset
		}
	}

	return page
}

type Result struct {
	Items  any   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
