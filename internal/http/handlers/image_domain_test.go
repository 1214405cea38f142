package handlers

import "testing"

func TestDomainAllowed(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"ceneostatic.pl", true},
		{"img.ceneostatic.pl", true},
		{"a.allegroimg.com", true},
		{"CENEO.PL", true},
		{"images.unsplash.com", true},
		{"evil.com", false},
		{"ceneostatic.pl.evil.com", false},
		{"notceneo.pl", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := domainAllowed(tc.host); got != tc.want {
			t.Errorf("domainAllowed(%q) = %v, want %v", tc.host, got, tc.want)
		}
	}
}
