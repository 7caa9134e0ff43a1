package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders rupee amounts the way the dashboard cards do:
// crores with one decimal, lakhs with two, smaller amounts with Indian digit
// grouping. Trailing zeros are kept ("₹1.0 Cr").
func FormatAmount(v float64) string {
	switch {
	case v >= 1e7:
		return "₹" + strconv.FormatFloat(v/1e7, 'f', 1, 64) + " Cr"
	case v >= 1e5:
		return "₹" + strconv.FormatFloat(v/1e5, 'f', 2, 64) + " L"
	default:
		return "₹" + groupIndian(int64(math.Round(v)))
	}
}

// FormatAmountListing renders rupee amounts the way property listings do:
// two decimals with trailing zeros (and a bare trailing dot) stripped, so
// ₹1 Cr rather than ₹1.00 Cr. The dashboard and listing rules intentionally
// disagree; callers must pick the variant their screen already uses.
func FormatAmountListing(v float64) string {
	switch {
	case v >= 1e7:
		return "₹" + stripZeros(strconv.FormatFloat(v/1e7, 'f', 2, 64)) + " Cr"
	case v >= 1e5:
		return "₹" + stripZeros(strconv.FormatFloat(v/1e5, 'f', 2, 64)) + " L"
	default:
		return "₹" + groupIndian(int64(math.Round(v)))
	}
}

func stripZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// groupIndian applies Indian digit grouping: the last three digits form one
// group, every two digits after that another (12,34,567).
func groupIndian(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}

	if neg {
		return "-" + s
	}
	return s
}
