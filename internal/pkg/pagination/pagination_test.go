package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 10, 10},
		{"abc", 10, 10},
		{"0", 10, 10},
		{"-3", 10, 10},
		{"25", 10, 25},
		{"1000", 10, MaxLimit},
		{"", 0, DefaultLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.raw, tt.def), "raw=%q def=%d", tt.raw, tt.def)
	}
}
