package dashboard

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25000000, "₹2.5 Cr"},
		{10000000, "₹1.0 Cr"},
		{12345678, "₹1.2 Cr"},
		{250000, "₹2.50 L"},
		{100000, "₹1.00 L"},
		{150000, "₹1.50 L"},
		{85000, "₹85,000"},
		{999, "₹999"},
		{0, "₹0"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAmountListing(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25000000, "₹2.5 Cr"},
		{10000000, "₹1 Cr"},    // trailing zeros stripped, unlike the dashboard
		{12500000, "₹1.25 Cr"},
		{250000, "₹2.5 L"},
		{100000, "₹1 L"},
		{85000, "₹85,000"},
	}
	for _, c := range cases {
		if got := FormatAmountListing(c.in); got != c.want {
			t.Errorf("FormatAmountListing(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGroupIndian(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{85000, "85,000"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{-85000, "-85,000"},
	}
	for _, c := range cases {
		if got := groupIndian(c.in); got != c.want {
			t.Errorf("groupIndian(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
