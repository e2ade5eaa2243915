package types

import (
	"testing"
	"time"
)

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want Period
	}{
		{"January", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), "2026-01"},
		{"December", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), "2025-12"},
		{"First of month", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "2026-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodOf(tt.time); got != tt.want {
				t.Errorf("PeriodOf: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"2026-09", "2026-09", false},
		{"2026-1", "", true},
		{"2026-13", "", true},
		{"garbage", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodNextPrev(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		next Period
		prev Period
	}{
		{"mid-year", "2026-06", "2026-07", "2026-05"},
		{"year wrap forward", "2026-12", "2027-01", "2026-11"},
		{"year wrap backward", "2026-01", "2026-02", "2025-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Next(); got != tt.next {
				t.Errorf("Next: got %q, want %q", got, tt.next)
			}
			if got := tt.p.Prev(); got != tt.prev {
				t.Errorf("Prev: got %q, want %q", got, tt.prev)
			}
		})
	}
}

func TestPeriodOrdering(t *testing.T) {
	if !Period("2026-09").Before("2026-10") {
		t.Error("2026-09 should sort before 2026-10")
	}
	if Period("2026-10").Before("2026-09") {
		t.Error("2026-10 should not sort before 2026-09")
	}
	if !Period("2025-12").Before("2026-01") {
		t.Error("2025-12 should sort before 2026-01")
	}
}

func TestPeriodStart(t *testing.T) {
	start := Period("2026-09").Start()
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("Start: got %v, want %v", start, want)
	}
}
