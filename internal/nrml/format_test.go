package nrml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"integral gets trailing .0", 1, "1.0"},
		{"negative integral", -122, "-122.0"},
		{"zero", 0, "0.0"},
		{"fraction unchanged", 0.1, "0.1"},
		{"negative fraction", -122.5, "-122.5"},
		{"small fraction", 0.0098, "0.0098"},
		{"shortest round-trip", 0.025, "0.025"},
		{"exponent form untouched", 1e-05, "1e-05"},
		{"large exponent form untouched", 1e+21, "1e+21"},
		{"infinity untouched", math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.input))
		})
	}
}

func TestFormatFloats(t *testing.T) {
	t.Run("space separated", func(t *testing.T) {
		assert.Equal(t, "1.0 2.0", FormatFloats([]float64{1, 2}, " "))
	})

	t.Run("comma-space separated", func(t *testing.T) {
		assert.Equal(t, "5.0, 5.5, 6.0", FormatFloats([]float64{5, 5.5, 6}, ", "))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", FormatFloats(nil, " "))
	})
}

func TestFormatInts(t *testing.T) {
	assert.Equal(t, "2,3,4", FormatInts([]int{2, 3, 4}, ","))
	assert.Equal(t, "", FormatInts(nil, ","))
}
