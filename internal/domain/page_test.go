package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	cases := []struct {
		name           string
		page, pageSize int
		want           int
	}{
		{"first page", 1, 20, 0},
		{"third page", 3, 20, 40},
		{"zero page", 0, 20, 0},
		{"negative page", -4, 20, 0},
		{"zero size", 5, 0, 0},
		{"largest page", math.MaxInt, 100, math.MaxInt},
		{"just past overflow", math.MaxInt/100 + 2, 100, math.MaxInt},
		{"at the limit", math.MaxInt/100 + 1, 100, (math.MaxInt / 100) * 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Offset(tc.page, tc.pageSize)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}
