// ABOUTME: Tests for CLI helper functions.
// ABOUTME: Tests parseTime formats and padRight.
package main

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "RFC3339",
			input:   "2026-08-29T07:30:00Z",
			wantErr: false,
		},
		{
			name:    "RFC3339 with offset",
			input:   "2026-08-29T07:30:00+02:00",
			wantErr: false,
		},
		{
			name:    "date and time with space",
			input:   "2026-08-29 07:30",
			wantErr: false,
		},
		{
			name:    "date only",
			input:   "2026-08-29",
			wantErr: false,
		},
		{
			name:    "invalid format",
			input:   "29-08-2026",
			wantErr: true,
		},
		{
			name:    "invalid random string",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("parseTime(%q) unexpected error: %v", tt.input, err)
				return
			}

			if result.IsZero() {
				t.Errorf("parseTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseTimeValues(t *testing.T) {
	result, err := parseTime("2026-08-29")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}

	if result.Year() != 2026 || result.Month() != time.August || result.Day() != 29 {
		t.Errorf("parseTime returned wrong date: got %v", result)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{
			name:   "short string padded",
			input:  "steps",
			length: 8,
			want:   "steps   ",
		},
		{
			name:   "exact length",
			input:  "steps",
			length: 5,
			want:   "steps",
		},
		{
			name:   "longer than length",
			input:  "heartRateVariability",
			length: 5,
			want:   "heartRateVariability",
		},
		{
			name:   "empty string",
			input:  "",
			length: 3,
			want:   "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}
