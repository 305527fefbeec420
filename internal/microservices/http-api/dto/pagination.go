package dto

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxPageOffset    = math.MaxInt32
)

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset query values. Missing or malformed values
// fall back to the defaults. Limit is capped at MaxPageLimit and offset at
// MaxPageOffset.
func ParsePage(limit, offset string) Page {
	p := Page{Limit: DefaultPageLimit}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = min(n, MaxPageLimit)
	}
	n, err := strconv.ParseInt(offset, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = nil // n is clamped to the int64 bounds
	}
	if err == nil && n > 0 {
		p.Offset = int(min(n, MaxPageOffset))
	}
	return p
}

// PaginatedResponse is the listing envelope with absolute links to the
// neighbouring pages.
type PaginatedResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginatedResponse builds the envelope; requestURL must be absolute and
// keeps its other query values in the links.
func NewPaginatedResponse[T any](results []T, total int64, requestURL *url.URL, page Page) PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}
	resp := PaginatedResponse[T]{Count: total, Results: results}

	if int64(page.Offset) < total-int64(page.Limit) {
		next := pageLink(requestURL, page.Limit, page.Offset+page.Limit)
		resp.Next = &next
	}
	if page.Offset > 0 {
		prevOffset := page.Offset - page.Limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prev := pageLink(requestURL, page.Limit, prevOffset)
		resp.Previous = &prev
	}
	return resp
}

func pageLink(base *url.URL, limit, offset int) string {
	u := *base
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
