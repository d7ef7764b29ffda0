// Package listutil parses list-view query parameters and computes
// pagination metadata for directory pages.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 12

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{12, 24, 48}

// Params carries the parsed list-view parameters of a request.
type Params struct {
	Page    int               // 1-indexed page number
	PerPage int               // rows per page
	Search  string            // free-text search query (q=)
	Filters map[string]string // exact-match filters, recognised keys only
}

// ParseParams extracts page, per_page, q and the named filters from URL
// query values. Unknown per_page values fall back to the default; unknown
// filter keys are dropped.
func ParseParams(q url.Values, filterKeys []string) Params {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !allowedPerPage(perPage) {
		perPage = DefaultPerPage
	}
	p := Params{
		Page:    page,
		PerPage: perPage,
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			p.Filters[key] = v
		}
	}
	return p
}

// Offset returns the SQL OFFSET for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page, clamped to the valid range
	PerPage    int
	Total      int // total matching rows
	TotalPages int
}

// NewPageInfo computes pagination metadata for a result set of total rows.
// POST: TotalPages >= 1 and 1 <= Page <= TotalPages
func NewPageInfo(p Params, total int) PageInfo {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// HasPrev reports whether an earlier page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PageNumbers returns at most 5 page numbers centered on the current page,
// for rendering pagination controls.
func (p PageInfo) PageNumbers() []int {
	const window = 5
	start := p.Page - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > p.TotalPages {
		end = p.TotalPages
		if start > end-window+1 {
			start = end - window + 1
		}
		if start < 1 {
			start = 1
		}
	}
	nums := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		nums = append(nums, n)
	}
	return nums
}

func allowedPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
