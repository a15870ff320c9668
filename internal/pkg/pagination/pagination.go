package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params represents pagination parameters
type Params struct {
	Page  int
	Limit int
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// FromRequest reads page and limit from the query string. Invalid or
// missing values fall back to the defaults; limit is capped at MaxLimit.
func FromRequest(r *http.Request) Params {
	return New(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
}

func New(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = DefaultLimit
	}
	return Normalize(page, limit)
}

// Normalize applies the defaults and the MaxLimit cap to already parsed values.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the response metadata for total matching items.
func (p Params) Meta(total int64) *Meta {
	return &Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
