package services

import "testing"

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Priya Nair", "PN"},
		{"priya", "P"},
		{"  Anil  Kumar  Rao ", "AR"},
		{"", "?"},
	}
	for _, tc := range cases {
		if got := computeInitials(tc.name); got != tc.want {
			t.Errorf("computeInitials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
