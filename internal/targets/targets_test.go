package targets

import "testing"

func TestParse(t *testing.T) {
	src := []byte(`
fallback_closed_deals = 8

target "priya@example.com" {
  monthly = 25000000
}

target "rahul@example.com" {
  monthly = 15000000
}
`)
	cfg, err := Parse(src, "targets.hcl")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.FallbackClosedDeals != 8 {
		t.Errorf("FallbackClosedDeals = %d, want 8", cfg.FallbackClosedDeals)
	}
	if got := cfg.MonthlyFor("priya@example.com"); got != 25000000 {
		t.Errorf("MonthlyFor(priya) = %v, want 25000000", got)
	}
	if got := cfg.MonthlyFor("nobody@example.com"); got != 0 {
		t.Errorf("MonthlyFor(nobody) = %v, want 0", got)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "targets.hcl")
	if err != nil {
		t.Fatalf("Parse of empty file failed: %v", err)
	}
	if cfg.FallbackClosedDeals != DefaultFallbackClosedDeals {
		t.Errorf("FallbackClosedDeals = %d, want default %d", cfg.FallbackClosedDeals, DefaultFallbackClosedDeals)
	}
}

func TestParseRejectsNonPositiveTarget(t *testing.T) {
	src := []byte(`
target "x@example.com" {
  monthly = 0
}
`)
	if _, err := Parse(src, "targets.hcl"); err == nil {
		t.Error("expected error for zero monthly target")
	}
}

func TestParseRejectsBadSyntax(t *testing.T) {
	if _, err := Parse([]byte(`target "x@example.com" {`), "targets.hcl"); err == nil {
		t.Error("expected error for unterminated block")
	}
}
