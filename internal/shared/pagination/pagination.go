// Package pagination provides the page request/response shapes shared by
// list endpoints and repositories.
package pagination

// DefaultSize is applied when a request omits the page size.
const DefaultSize = 10

// MaxSize caps the page size a client may request.
const MaxSize = 100

// Request is a zero-based page specification.
type Request struct {
	Page int
	Size int
}

// Normalize clamps the request into valid bounds.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

// Offset returns the row offset for the normalized request.
func (r Request) Offset() int {
	n := r.Normalize()
	return n.Page * n.Size
}

// Page bundles one page of results with paging metadata.
type Page[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage assembles a Page from a result slice and the total element count.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	req = req.Normalize()
	totalPages := int(total / int64(req.Size))
	if total%int64(req.Size) != 0 {
		totalPages++
	}
	return Page[T]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
