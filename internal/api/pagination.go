package api

import (
	"strconv" // String conversion

	"asset_inventory/internal/store" // Page window

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	defaultLimit = 10        // Page size when none is given
	maxLimit     = 100       // Upper bound on page size
	maxPage      = 1_000_000 // Upper bound on page number, keeps the offset in range
)

// pagination is the page/limit pair requested by the client
type pagination struct {
	Page  int
	Limit int
}

// parsePagination reads page and limit, falling back to defaults on absent or invalid values
func parsePagination(c *gin.Context) pagination {
	p := pagination{Page: 1, Limit: defaultLimit}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = min(v, maxPage) // Set page if valid
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = min(v, maxLimit) // Set limit within bounds
	}
	return p
}

// window converts the request into an offset/limit pair
func (p pagination) window() store.Page {
	return store.Page{Offset: (p.Page - 1) * p.Limit, Limit: p.Limit}
}

// totalPages is ceil(total / limit)
func (p pagination) totalPages(total int64) int {
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
