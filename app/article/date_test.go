package article

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want Date
		ok   bool
	}{
		{"2025-11-24", Date{2025, time.November, 24}, true},
		{"2025-11-24T09:30:00Z", Date{2025, time.November, 24}, true},
		{"2025-11-24T09:30:00+05:00", Date{2025, time.November, 24}, true},
		{"Mon, 24 Nov 2025 09:30:00 GMT", Date{2025, time.November, 24}, true},
		{"Mon, 24 Nov 2025 09:30:00 +0000", Date{2025, time.November, 24}, true},
		{"Nov 24, 2025", Date{2025, time.November, 24}, true},
		{"November 24, 2025", Date{2025, time.November, 24}, true},
		{"24 Nov 2025", Date{2025, time.November, 24}, true},
		{"6 January 2026", Date{2026, time.January, 6}, true},
		{"  Nov 24, 2025  ", Date{2025, time.November, 24}, true},
		{"", Date{}, false},
		{"not a date", Date{}, false},
		{"soonish", Date{}, false},
	}

	for _, tt := range tests {
		got, ok := NormalizeDate(tt.raw)
		if ok != tt.ok {
			t.Errorf("NormalizeDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeDateDiscardsTimeOfDay(t *testing.T) {
	morning, ok1 := NormalizeDate("2025-11-24T00:01:00Z")
	evening, ok2 := NormalizeDate("2025-11-24T23:59:00Z")
	if !ok1 || !ok2 {
		t.Fatal("expected both timestamps to parse")
	}
	if morning != evening {
		t.Errorf("same calendar day should normalize equal: %v != %v", morning, evening)
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Date
		ok   bool
	}{
		{
			name: "month day year in link text",
			text: "New Release\nNov 20, 2025\nRead more",
			want: Date{2025, time.November, 20},
			ok:   true,
		},
		{
			name: "full month name",
			text: "Published on November 3, 2025 by the team",
			want: Date{2025, time.November, 3},
			ok:   true,
		},
		{
			name: "no comma",
			text: "Posted Dec 1 2025",
			want: Date{2025, time.December, 1},
			ok:   true,
		},
		{
			name: "day first with year",
			text: "15 December 2025 / Global",
			want: Date{2025, time.December, 15},
			ok:   true,
		},
		{
			name: "no date at all",
			text: "An article about nothing in particular",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindDate(tt.text)
			if ok != tt.ok {
				t.Fatalf("FindDate(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("FindDate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindDateYearlessAssumesCurrentYear(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	got, ok := findDate("6 January / Global", now)
	if !ok {
		t.Fatal("expected year-less date to parse")
	}
	want := Date{2026, time.January, 6}
	if got != want {
		t.Errorf("findDate = %v, want %v", got, want)
	}
}

func TestDateBefore(t *testing.T) {
	tests := []struct {
		a, b Date
		want bool
	}{
		{Date{2025, time.November, 23}, Date{2025, time.November, 24}, true},
		{Date{2025, time.November, 24}, Date{2025, time.November, 24}, false},
		{Date{2025, time.November, 25}, Date{2025, time.November, 24}, false},
		{Date{2024, time.December, 31}, Date{2025, time.January, 1}, true},
		{Date{2025, time.October, 31}, Date{2025, time.November, 1}, true},
	}

	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDateString(t *testing.T) {
	d := Date{2025, time.November, 4}
	if got := d.String(); got != "2025-11-04" {
		t.Errorf("String() = %q, want %q", got, "2025-11-04")
	}
}
