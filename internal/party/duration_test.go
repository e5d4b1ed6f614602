package party

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"2h", 2 * time.Hour, false},
		{"45m", 45 * time.Minute, false},
		{"1d 12h", 36 * time.Hour, false},
		{"2h30m", 2*time.Hour + 30*time.Minute, false},
		{" 90s ", 90 * time.Second, false},
		{"2H", 2 * time.Hour, false},
		{"", 0, true},
		{"abc", 0, true},
		{"2h luego", 0, true},
		{"0m", 0, true},
		{"-5m", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{2 * time.Hour, "2h"},
		{36 * time.Hour, "1d 12h"},
		{2*time.Hour + 30*time.Minute, "2h 30m"},
		{45 * time.Second, "0m"},
		{0, "0m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
