package pagination

import (
	"gorm.io/gorm"
)

// MaxPageSize caps a single page.
const MaxPageSize = 100

// PageRequest holds optional pagination parameters parsed from query strings.
// A zero PageRequest means "no paging": listings return every row.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// IsSet reports whether the caller asked for a page.
func (p PageRequest) IsSet() bool {
	return p.Page > 0 || p.PageSize > 0
}

// Defaults fills in default values when only one of page or pageSize is given.
func (p *PageRequest) Defaults() {
	if !p.IsSet() {
		return
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Window returns the [start, end) slice bounds of the page within n rows.
func (p PageRequest) Window(n int) (int, int) {
	if !p.IsSet() {
		return 0, n
	}
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT when a page was
// requested.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.IsSet() {
			return db
		}
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
