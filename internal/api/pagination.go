package api

import (
	"net/http"
	"strconv"
)

// Pagination defaults and bounds.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// pagination holds normalized paging parameters.
type pagination struct {
	Page  int64
	Limit int64
	Skip  int64
}

// parsePagination derives page, limit, and skip from the query string.
// Non-numeric or missing values fall back to the defaults rather than
// erroring; limit is clamped to [1, maxLimit] and page to >= 1, so skip is
// never negative.
func parsePagination(r *http.Request) pagination {
	q := r.URL.Query()

	page := parseIntOr(q.Get("page"), defaultPage)
	if page < 1 {
		page = 1
	}

	limit := parseIntOr(q.Get("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

func parseIntOr(s string, fallback int64) int64 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// totalPages computes the page count for a collection size. An empty
// collection still reports one page.
func totalPages(total, limit int64) int64 {
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
