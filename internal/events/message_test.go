package events

import "testing"

func TestIsLeaveCommand(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"desapuntar", true},
		{"Desapuntar", true},
		{"DESAPUNTARME", true},
		{"  desapuntar  ", true},
		{"me quiero desapuntar mañana", false},
		{"desapuntando", false},
		{"3", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isLeaveCommand(tt.in); got != tt.want {
			t.Errorf("isLeaveCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
