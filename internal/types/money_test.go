package types

import "testing"

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{Amount: 100, Currency: "PLN"}, "100 PLN"},
		{Money{Amount: 149.99, Currency: "PLN"}, "149.99 PLN"},
		{Money{Amount: 89.5, Currency: "PLN"}, "89.50 PLN"},
		{Money{Amount: 0, Currency: "PLN"}, "0 PLN"},
		{Money{Amount: 42}, "42 PLN"}, // missing currency falls back
	}
	for _, tc := range cases {
		if got := tc.m.Format(); got != tc.want {
			t.Errorf("Format(%+v) = %q, want %q", tc.m, got, tc.want)
		}
	}
}
