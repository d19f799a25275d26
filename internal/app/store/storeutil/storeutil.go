// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxLimit caps caller-supplied page sizes.
const MaxLimit int64 = 100

// MaxSkip is the largest number of rows a page request may skip. Pages
// beyond it are pulled back to the last page that fits.
const MaxSkip int64 = math.MaxInt32

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	page = clampPage(page, limit)
	sk := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(sk)
}

// PageRequest selects one 1-based page of Limit items.
// Limit 0 means the whole result set on a single page.
type PageRequest struct {
	Page  int64
	Limit int64
}

// ParsePage builds a PageRequest from raw query values. Absent, malformed,
// zero or negative values fall back to page 1 and defaultLimit; limits
// above MaxLimit and pages past MaxSkip are clamped.
func ParsePage(pageStr, limitStr string, defaultLimit int64) PageRequest {
	page := parsePositive(pageStr, 1)
	limit := parsePositive(limitStr, defaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit > 0 {
		page = clampPage(page, limit)
	}
	return PageRequest{Page: page, Limit: limit}
}

// clampPage keeps (page-1)*limit within [0, MaxSkip]. limit must be positive.
func clampPage(page, limit int64) int64 {
	if page <= 0 {
		return 1
	}
	if last := MaxSkip/limit + 1; page > last {
		return last
	}
	return page
}

// PageFromRequest reads the page and limit query parameters of r.
func PageFromRequest(r *http.Request, defaultLimit int64) PageRequest {
	return ParsePage(query.Get(r, "page"), query.Get(r, "limit"), defaultLimit)
}

func parsePositive(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Unbounded reports whether the request asks for every row.
func (p PageRequest) Unbounded() bool { return p.Limit <= 0 }

// FindOptions returns skip/limit options for p. Unbounded requests get
// fresh options with neither set.
func (p PageRequest) FindOptions() *options.FindOptions {
	if p.Unbounded() {
		return options.Find()
	}
	return Paginate(p.Limit, p.Page)
}

// TotalPages is ceil(total/limit), or 1 when the request is unbounded.
func (p PageRequest) TotalPages(total int64) int64 {
	if p.Unbounded() {
		return 1
	}
	return (total + p.Limit - 1) / p.Limit
}

// Page is one page of a listing plus the numbers needed to render a pager.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int64
	Pages int64
}

// NewPage assembles a Page from a request, its rows and the filter total.
// A nil items slice is replaced by an empty one so it encodes as [].
func NewPage[T any](req PageRequest, items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  req.Page,
		Pages: req.TotalPages(total),
	}
}
