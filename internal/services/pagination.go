package services

// Pagination is the listing envelope returned alongside any paged result.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalDocs   int64 `json:"total_docs"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
}

func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	p := Pagination{
		Page:       page,
		Limit:      limit,
		TotalDocs:  total,
		TotalPages: totalPages,
	}
	if page < totalPages {
		next := page + 1
		p.HasNextPage = true
		p.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		p.HasPrevPage = true
		p.PrevPage = &prev
	}
	return p
}
