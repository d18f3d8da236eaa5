package dto

// PageQuery is the shared collection query surface: page, limit, sortBy,
// sortOrder. Sort columns are whitelisted per repository.
type PageQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// Normalize applies listing defaults and caps the page size.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}
