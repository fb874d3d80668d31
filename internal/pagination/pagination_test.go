package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Page: 1, Size: 50}},
		{"negative", Params{Page: -3, Size: -1}, Params{Page: 1, Size: 50}},
		{"clamped", Params{Page: 2, Size: 500}, Params{Page: 2, Size: 100}},
		{"kept", Params{Page: 3, Size: 10}, Params{Page: 3, Size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestLimitOffset(t *testing.T) {
	p := Params{Page: 3, Size: 20}
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())

	assert.Equal(t, 0, Params{}.Offset())
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	page := Paginate(all, Params{Page: 2, Size: 2})
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)

	last := Paginate(all, Params{Page: 3, Size: 2})
	assert.Equal(t, []int{5}, last.Items)
}

func TestPaginateOutOfRangeIsEmpty(t *testing.T) {
	page := Paginate([]int{1, 2, 3}, Params{Page: 9, Size: 2})

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 9, page.Page)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, Params{})

	assert.Equal(t, []string{}, page.Items)
	assert.Equal(t, 0, page.Pages)
	assert.Equal(t, 50, page.Size)
}

func TestMap(t *testing.T) {
	page := NewPage([]int{1, 2}, 7, Params{Page: 1, Size: 2})

	mapped := Map(page, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, 7, mapped.Total)
	assert.Equal(t, 4, mapped.Pages)
}
