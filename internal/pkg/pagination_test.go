package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		total      int64
		wantPages  int
		wantOffset int
	}{
		{"zero records", 1, 0, 0, 0},
		{"exact single page", 1, 5, 1, 0},
		{"partial page", 1, 3, 1, 0},
		{"two pages", 2, 6, 2, 5},
		{"boundary multiple", 1, 10, 2, 0},
		{"eleven records three pages", 3, 11, 3, 10},
		{"page below one clamps to one", 0, 8, 2, 0},
		{"negative page clamps to one", -4, 8, 2, 0},
		{"page past the end keeps its offset", 9, 6, 2, 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta, offset := Paginate(tc.page, tc.total)
			assert.Equal(t, tc.total, meta.Total)
			assert.Equal(t, tc.wantPages, meta.Pages)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestPageMetaInRange(t *testing.T) {
	meta, _ := Paginate(1, 0)
	assert.True(t, meta.InRange(), "page 1 of zero records is valid")

	meta, _ = Paginate(2, 0)
	assert.False(t, meta.InRange())

	meta, _ = Paginate(2, 10)
	assert.True(t, meta.InRange())

	meta, _ = Paginate(3, 10)
	assert.False(t, meta.InRange())
}
