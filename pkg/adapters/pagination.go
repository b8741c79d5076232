package adapters

// TotalPages returns how many pages of pageSize hold total items.
// A non-positive page size means everything fits on one page.
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 1
	}
	if total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// Paginated is a page of items with its position in the full result.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int64 `json:"offset"`
	Page       int64 `json:"page"`
	TotalPages int64 `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

func NewPaginated[T any](items []T, total int64, limit int, offset int64) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	if offset < 0 {
		offset = 0
	}

	page := int64(1)
	if limit > 0 {
		page = offset/int64(limit) + 1
	}

	return Paginated[T]{
		Items:      items,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		Page:       page,
		TotalPages: TotalPages(total, limit),
		HasMore:    offset+int64(len(items)) < total,
	}
}

// MapPage converts the items of a page, keeping the page position.
func MapPage[T, U any](p Paginated[T], fn func(T) U) Paginated[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Paginated[U]{
		Items:      out,
		Total:      p.Total,
		Limit:      p.Limit,
		Offset:     p.Offset,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		HasMore:    p.HasMore,
	}
}
