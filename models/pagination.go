package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination computes the page block; pages is ceil(total/limit).
func NewPagination(req PageRequest, total int64) Pagination {
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Pagination{
		Current: req.Page,
		Pages:   pages,
		Total:   total,
		HasNext: req.Page < pages,
		HasPrev: req.Page > 1,
	}
}

type ArticlePage struct {
	Articles   []Article  `json:"articles"`
	Pagination Pagination `json:"pagination"`
}

type UserPage struct {
	Users      []UserListItem `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
