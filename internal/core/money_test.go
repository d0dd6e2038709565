package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"4.50", 4.5, true},
		{"1,23", 1.23, true},
		{"0.01", 0.01, true},
		{"0.125", 0.125, true}, // no rounding at parse time
		{" 2.50 ", 2.5, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %v", tc.in, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{4.5, "4.50"},
		{2, "2.00"},
		{6.5, "6.50"},
		{0.1 + 0.2, "0.30"},
		{1234.567, "1234.57"},
		{0.004, "0.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.out {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("$", 6.5); got != "$6.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatMoney("€", -3); got != "-€3.00" {
		t.Fatalf("got %q", got)
	}
}
