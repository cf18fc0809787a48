package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "already 2 decimals",
			input: 123.45,
			want:  123.45,
		},
		{
			name:  "integer",
			input: 123.0,
			want:  123.0,
		},
		{
			name:  "half rounds away from zero",
			input: 0.125,
			want:  0.13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "R$ 0,00"},
		{9.489, "R$ 9,49"},
		{1234.5, "R$ 1.234,50"},
		{1000000, "R$ 1.000.000,00"},
		{-12.3, "-R$ 12,30"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBRL(tt.input); got != tt.want {
				t.Errorf("FormatBRL(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCentsToAmount(t *testing.T) {
	if got := CentsToAmount(123456); got != 1234.56 {
		t.Errorf("CentsToAmount() = %v, want 1234.56", got)
	}
	if got := CentsToAmount(0); got != 0 {
		t.Errorf("CentsToAmount() = %v, want 0", got)
	}
}
