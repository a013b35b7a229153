package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestNormalize(t *testing.T) {
	norm := Request{Page: -3, Size: 0}.Normalize()
	assert.Equal(t, 0, norm.Page)
	assert.Equal(t, DefaultSize, norm.Size)

	norm = Request{Page: 2, Size: 500}.Normalize()
	assert.Equal(t, MaxSize, norm.Size)
	assert.Equal(t, 2*MaxSize, Request{Page: 2, Size: 500}.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, Request{Page: 0, Size: 3}, 7)
	assert.Equal(t, 3, len(page.Items))
	assert.Equal(t, int64(7), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	page = NewPage([]int{}, Request{Page: 1, Size: 5}, 10)
	assert.Equal(t, 2, page.TotalPages)
}
