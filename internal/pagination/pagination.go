// Package pagination slices ordered result sets into pages.
package pagination

const (
	DefaultPage = 1
	DefaultSize = 50
	MaxSize     = 100
)

// Params is a page request. Zero values fall back to the defaults.
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalize applies defaults and clamps Size to MaxSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

func (p Params) Limit() int {
	return p.Normalize().Size
}

func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Page is the list envelope returned to clients.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// NewPage wraps one page of items. Items is never nil so it encodes as [].
func NewPage[T any](items []T, total int, p Params) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}

	pages := 0
	if total > 0 {
		pages = (total + p.Size - 1) / p.Size
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: pages,
	}
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](page Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: page.Pages,
	}
}

// Paginate slices an ordered in-memory collection. A page past the end
// yields no items and the full total.
func Paginate[T any](all []T, p Params) Page[T] {
	p = p.Normalize()
	total := len(all)

	start := p.Offset()
	if start >= total {
		return NewPage([]T{}, total, p)
	}
	end := min(start+p.Size, total)

	return NewPage(all[start:end], total, p)
}
