// Package paging implements page-number pagination for list
// endpoints: a 1-based "page" query parameter and a fixed page size.
// There is no explicit last-page signal; callers infer it from a short
// slice.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// ParsePage extracts the 1-based "page" query parameter. Absent,
// non-numeric, or sub-1 values all mean page 1.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Window returns the skip/limit pair for a page, covering records
// [(page-1)*PageSize, page*PageSize).
func Window(page int) (skip, limit int64) {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * PageSize, PageSize
}
