package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		page, size        int
		wantPage, wantOff int
		wantLimit         int
	}{
		{name: "first page", page: 1, size: 20, wantPage: 1, wantOff: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 5, wantPage: 3, wantOff: 10, wantLimit: 5},
		{name: "page below one", page: -2, size: 5, wantPage: 1, wantOff: 0, wantLimit: 5},
		{name: "size too large", page: 2, size: 1000, wantPage: 2, wantOff: DefaultPageSize, wantLimit: DefaultPageSize},
		{name: "size zero", page: 1, size: 0, wantPage: 1, wantOff: 0, wantLimit: DefaultPageSize},
		{name: "last page in window", page: 100, size: 100, wantPage: 100, wantOff: 9900, wantLimit: 100},
		{name: "page past window", page: 101, size: 100, wantPage: 100, wantOff: 9900, wantLimit: 100},
		{name: "huge page", page: math.MaxInt, size: 10, wantPage: 1000, wantOff: 9990, wantLimit: 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, off, lim := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantOff, off)
			assert.Equal(t, tt.wantLimit, lim)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 0, TotalPages(0, 10))
	assert.EqualValues(t, 1, TotalPages(10, 10))
	assert.EqualValues(t, 2, TotalPages(11, 10))
	assert.EqualValues(t, 0, TotalPages(11, 0))
}
