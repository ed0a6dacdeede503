package domain

type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
}

func (p Page[T]) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Offset 换算成 SQL offset（Page 从 1 开始）
func (q ListQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Normalize 非法的分页参数回落到默认值
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}
