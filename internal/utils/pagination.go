// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationParams is the console's zero-based paging request.
type PaginationParams struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// PaginationResult is reported in the meta block of list responses.
// PageCount is -1 when the total is unknown.
type PaginationResult struct {
	PageIndex int         `json:"pageIndex"`
	PageSize  int         `json:"pageSize"`
	Total     int64       `json:"total"`
	PageCount int         `json:"pageCount"`
	Data      interface{} `json:"data"`
}

// GetPaginationParams reads page (1-based, as users type it) and pageSize.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return PaginationParams{PageIndex: page - 1, PageSize: size}
}

// WirePage converts a zero-based table index into the backend's 1-based page.
func WirePage(pageIndex int) int {
	if pageIndex < 0 {
		return 1
	}
	return pageIndex + 1
}

func PageCount(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Page", strconv.Itoa(result.PageIndex+1))
	c.Header("X-Per-Page", strconv.Itoa(result.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.PageCount))
	if result.Total >= 0 {
		c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	}
}
