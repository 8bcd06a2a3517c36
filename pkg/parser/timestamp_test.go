package parser

import (
	"fmt"
	"testing"
	"time"
)

var testDate = time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC)

func TestTimestampRecognizer_Recognize(t *testing.T) {
	rec := NewTimestampRecognizer(testDate)

	tests := []struct {
		name          string
		line          string
		wantMatch     bool
		wantTime      time.Time
		wantRemainder string
	}{
		{
			name:          "timestamp at line start",
			line:          "14:45:36.507 [info] service started",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 14, 45, 36, 507_000_000, time.UTC),
			wantRemainder: "[info] service started",
		},
		{
			name:          "timestamp embedded mid-line",
			line:          "pod/reaper-0 14:45:36.507 shutting down",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 14, 45, 36, 507_000_000, time.UTC),
			wantRemainder: "shutting down",
		},
		{
			name:          "single digit hour",
			line:          "9:05:06.123 early morning",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 9, 5, 6, 123_000_000, time.UTC),
			wantRemainder: "early morning",
		},
		{
			name:          "timestamp only, empty remainder",
			line:          "14:45:36.507",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 14, 45, 36, 507_000_000, time.UTC),
			wantRemainder: "",
		},
		{
			name:          "midnight",
			line:          "00:00:00.000 rollover",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
			wantRemainder: "rollover",
		},
		{
			name:      "no timestamp",
			line:      "    at java.lang.Thread.run(Thread.java:748)",
			wantMatch: false,
		},
		{
			name:      "empty line",
			line:      "",
			wantMatch: false,
		},
		{
			name:      "out of range fields",
			line:      "99:61:61.000 noise",
			wantMatch: false,
		},
		{
			name:      "hour 24",
			line:      "24:00:00.000 invalid",
			wantMatch: false,
		},
		{
			name:      "minute 61",
			line:      "14:61:36.507 invalid",
			wantMatch: false,
		},
		{
			name:      "too many millisecond digits",
			line:      "14:45:36.5071 invalid",
			wantMatch: false,
		},
		{
			name:      "missing milliseconds",
			line:      "14:45:36 invalid",
			wantMatch: false,
		},
		{
			name:      "token embedded in digit run",
			line:      "114:45:36.507 invalid",
			wantMatch: false,
		},
		{
			name:          "first valid token wins over later ones",
			line:          "14:45:36.507 retrying 14:45:37.000",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 14, 45, 36, 507_000_000, time.UTC),
			wantRemainder: "retrying 14:45:37.000",
		},
		{
			name:          "invalid token before valid one is skipped",
			line:          "99:99:99.999 then 14:45:36.507 ok",
			wantMatch:     true,
			wantTime:      time.Date(2023, 10, 15, 14, 45, 36, 507_000_000, time.UTC),
			wantRemainder: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := rec.Recognize(tt.line)
			if ok != tt.wantMatch {
				t.Fatalf("Recognize(%q) match = %v, want %v", tt.line, ok, tt.wantMatch)
			}
			if !tt.wantMatch {
				return
			}
			if !m.Time.Equal(tt.wantTime) {
				t.Errorf("Recognize(%q) time = %v, want %v", tt.line, m.Time, tt.wantTime)
			}
			if m.Remainder != tt.wantRemainder {
				t.Errorf("Recognize(%q) remainder = %q, want %q", tt.line, m.Remainder, tt.wantRemainder)
			}
		})
	}
}

func TestTimestampRecognizer_RoundTrip(t *testing.T) {
	rec := NewTimestampRecognizer(testDate)

	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 30, 59} {
			for _, second := range []int{0, 59} {
				line := fmt.Sprintf("%02d:%02d:%02d.250 msg", hour, minute, second)
				m, ok := rec.Recognize(line)
				if !ok {
					t.Fatalf("Recognize(%q) found no timestamp", line)
				}
				h, mi, s := m.Time.Clock()
				if h != hour || mi != minute || s != second {
					t.Errorf("Recognize(%q) = %02d:%02d:%02d, want %02d:%02d:%02d",
						line, h, mi, s, hour, minute, second)
				}
				if m.Time.Nanosecond() != 250_000_000 {
					t.Errorf("Recognize(%q) nanos = %d, want 250ms", line, m.Time.Nanosecond())
				}
			}
		}
	}
}

func TestTimestampRecognizer_UsesEffectiveDate(t *testing.T) {
	rec := NewTimestampRecognizer(time.Date(2024, 2, 29, 13, 59, 0, 0, time.UTC))

	m, ok := rec.Recognize("14:45:36.507 leap day")
	if !ok {
		t.Fatal("expected a match")
	}
	want := time.Date(2024, 2, 29, 14, 45, 36, 507_000_000, time.UTC)
	if !m.Time.Equal(want) {
		t.Errorf("time = %v, want %v (date's own time-of-day must be ignored)", m.Time, want)
	}
}
