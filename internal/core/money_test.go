package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"10", 1000, true},
		{"10.5", 1050, true},
		{"10.55", 1055, true},
		{"10.555", 1056, true}, // half-up rounding
		{"0", 0, true},
		{"0.01", 1, true},
		{" 2.50 ", 250, true},
		{"-5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"$10", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d cents, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{7000, "70.00"},
		{105, "1.05"},
		{0, "0.00"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestDateTotalsNet(t *testing.T) {
	totals := DateTotals{Income: Money{Cents: 10000}, Expense: Money{Cents: 3000}}
	if got := totals.Net(); got.Cents != 7000 {
		t.Fatalf("expected net 7000, got %d", got.Cents)
	}
	if got := (DateTotals{}).Net(); got.Cents != 0 {
		t.Fatalf("expected zero net for empty totals, got %d", got.Cents)
	}
}
