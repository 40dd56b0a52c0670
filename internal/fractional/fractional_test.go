package fractional

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"100-000", 100.0},
		{"100-001", 100.0 + 1.0/256.0},
		{"100-00+", 100.0 + 4.0/256.0},
		{"100-16+", 100.0 + 16.0/32.0 + 4.0/256.0},
		{"99-317", 99.0 + 31.0/32.0 + 7.0/256.0},
		{"0-000", 0.0},
		{"1000-160", 1000.5},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("parse mismatch! should be %v but got %v", tc.expected, got)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"100",
		"-000",
		"100-",
		"100-00",
		"100-0000",
		"100-320",
		"100-008",
		"100-00x",
		"abc-000",
		"100_000",
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{100.0, "100-000"},
		{100.515625, "100-16+"},
		{99.0 + 31.0/32.0 + 7.0/256.0, "99-317"},
		{100.0 + 1.0/256.0, "100-001"},
		{100.5, "100-160"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := Format(tc.input); got != tc.expected {
				t.Fatalf("format mismatch! should be %s but got %s", tc.expected, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for handle := 99; handle <= 101; handle++ {
		for ticks := 0; ticks < 256; ticks++ {
			price := float64(handle) + float64(ticks)/256.0
			parsed, err := Parse(Format(price))
			if err != nil {
				t.Fatalf("round trip of %v: %v", price, err)
			}
			if parsed != price {
				t.Fatalf("round trip mismatch: got %v want %v", parsed, price)
			}
		}
	}
}
