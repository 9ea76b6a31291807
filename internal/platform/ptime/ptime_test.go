package ptime

import (
	"testing"
	"time"
)

func TestFromDisplay_SubtractsFixedOffset(t *testing.T) {
	// 2025-06-01 20:00 entered in the display zone is noon UTC
	civil := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC) // location must be ignored
	got := FromDisplay(civil)
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("FromDisplay = %v want %v", got, want)
	}
}

func TestToDisplay_AddsFixedOffset(t *testing.T) {
	utc := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := ToDisplay(utc)
	if got.Hour() != 20 {
		t.Fatalf("ToDisplay hour = %d want 20", got.Hour())
	}
	if !got.Equal(utc) {
		t.Fatal("ToDisplay must not change the instant, only the representation")
	}
}

func TestParseDisplay_RoundTrip(t *testing.T) {
	cases := []string{
		"2025-06-01 20:00:00",
		"2025-12-31 23:59:59",
		"2024-02-29 08:30:00", // leap day
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			instant, err := ParseDisplay(in)
			if err != nil {
				t.Fatalf("ParseDisplay(%q): %v", in, err)
			}
			if instant.Location() != time.UTC {
				t.Fatalf("ParseDisplay must return UTC, got %v", instant.Location())
			}
			if got := FormatDisplay(instant); got != in {
				t.Fatalf("round trip got %q want %q", got, in)
			}
		})
	}
}

func TestParseDisplay_AlternateLayouts(t *testing.T) {
	want, err := ParseDisplay("2025-06-01 20:30:00")
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{"2025-06-01T20:30:00", "2025-06-01 20:30", "2025-06-01T20:30", "  2025-06-01 20:30:00  "} {
		got, err := ParseDisplay(in)
		if err != nil {
			t.Fatalf("ParseDisplay(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDisplay(%q) = %v want %v", in, got, want)
		}
	}
}

func TestParseDisplay_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a time", "2025-13-01 00:00:00", "01/06/2025"} {
		if _, err := ParseDisplay(in); err == nil {
			t.Fatalf("ParseDisplay(%q) expected error", in)
		}
	}
}

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatal("Ptr(zero) should be nil")
	}
	now := time.Now()
	p := Ptr(now)
	if p == nil || !p.Equal(now) {
		t.Fatalf("Ptr(now) = %v", p)
	}
}
