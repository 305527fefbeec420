package dto

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		limit, offset string
		want          Page
	}{
		{"", "", Page{Limit: 10}},
		{"5", "20", Page{Limit: 5, Offset: 20}},
		{"500", "0", Page{Limit: 100}},
		{"abc", "-3", Page{Limit: 10}},
		{"0", "x", Page{Limit: 10}},
		{"10", "9223372036854775807", Page{Limit: 10, Offset: MaxPageOffset}},
		{"10", "99999999999999999999", Page{Limit: 10, Offset: MaxPageOffset}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePage(tt.limit, tt.offset), "limit=%q offset=%q", tt.limit, tt.offset)
	}
}

func TestNewPaginatedResponse_Links(t *testing.T) {
	base, err := url.Parse("http://api.test/api/v1/titles/?year=2001&limit=2&offset=2")
	require.NoError(t, err)

	resp := NewPaginatedResponse([]int{3, 4}, 5, base, Page{Limit: 2, Offset: 2})

	assert.Equal(t, int64(5), resp.Count)
	assert.Equal(t, []int{3, 4}, resp.Results)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "http://api.test/api/v1/titles/?limit=2&offset=4&year=2001", *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://api.test/api/v1/titles/?limit=2&year=2001", *resp.Previous)
}

func TestNewPaginatedResponse_SinglePage(t *testing.T) {
	base, _ := url.Parse("http://api.test/api/v1/genres/")

	resp := NewPaginatedResponse[string](nil, 0, base, Page{Limit: 10})

	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestNewPaginatedResponse_HugeOffset(t *testing.T) {
	base, _ := url.Parse("http://api.test/api/v1/titles/")

	page := ParsePage("100", "9223372036854775807")
	resp := NewPaginatedResponse[int](nil, 3, base, page)
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://api.test/api/v1/titles/?limit=100&offset=2147483547", *resp.Previous)

	resp = NewPaginatedResponse[int](nil, 3, base, Page{Limit: 100, Offset: math.MaxInt})
	assert.Nil(t, resp.Next, "offset+limit must not wrap around")
}
