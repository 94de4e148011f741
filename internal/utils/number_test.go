package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{" 7.5 ", 7.5, true},
		{"1,234.50", 1234.5, true},
		{"1.234,50", 1234.5, true},
		{"2 345,6", 2345.6, true},
		{"1,500", 1500, true},
		{"0,5", 0.5, true},
		{"1.000.000", 1000000, true},
		{"(12)", -12, true},
		{"-3", -3, true},
		{"N/A", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"12 m3", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		require.Equal(t, c.ok, ok, c.in)
		require.InDelta(t, c.want, got, 1e-9, c.in)
	}
}
