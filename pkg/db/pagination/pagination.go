package pagination

import (
	"errors"
	"math"
)

// ErrPageOutOfRange reports a page number past the last page. The first
// page of an empty result is always in range.
var ErrPageOutOfRange = errors.New("page_out_of_range")

const (
	DefaultPageSize = 50
	MaxPageSize     = 250
)

// Pagination is a page-number request, bound from ?page=&page_size=.
type Pagination struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

type PageInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Normalize fills defaults and clamps page size to [1, max].
func (p Pagination) Normalize(defaultSize, max int) Pagination {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if p.PageSize > max {
		p.PageSize = max
	}
	return p
}

// Offset is the row offset of the page, saturating at math.MaxInt.
func (p Pagination) Offset() int {
	if p.Page < 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Check returns ErrPageOutOfRange when p lies past the last page of total rows.
func (p Pagination) Check(total int64) error {
	if p.Page > numPages(total, p.PageSize) {
		return ErrPageOutOfRange
	}
	return nil
}

func numPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// BuildPageInfo describes the page p within total rows.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	pages := numPages(total, p.PageSize)
	return PageInfo{
		Page:        p.Page,
		PageSize:    p.PageSize,
		Total:       total,
		NumPages:    pages,
		HasNext:     p.Page < pages,
		HasPrevious: p.Page > 1,
	}
}
