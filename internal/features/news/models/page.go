package models

// Pagination holds the paging metadata for a listing page.
// Pages are 1-based; total_pages = ceil(total/limit).
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Skip       int `json:"skip"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination creates pagination metadata for the requested page.
// Pages below 1 are clamped to 1.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// SetTotal records the backend-reported total and derives the page count
func (p *Pagination) SetTotal(total int) {
	p.Total = total
	p.TotalPages = (total + p.Limit - 1) / p.Limit
}

// HasPrev reports whether a previous page exists
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// PrevPage returns the previous page number
func (p Pagination) PrevPage() int {
	return p.Page - 1
}

// NextPage returns the next page number
func (p Pagination) NextPage() int {
	return p.Page + 1
}
