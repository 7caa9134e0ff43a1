// Package targets loads monthly sales targets from an HCL file.
//
// The file format is:
//
//	fallback_closed_deals = 5
//
//	target "priya@example.com" {
//	  monthly = 25000000
//	}
//
//	target "rahul@example.com" {
//	  monthly = 15000000
//	}
//
// Agents without a target block fall back to the closed-deals heuristic on
// the dashboard, using fallback_closed_deals as the denominator.
package targets

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DefaultFallbackClosedDeals is the closed-deals denominator used when no
// targets file is configured. Inherited from the previous system; product has
// not yet settled on a real default.
const DefaultFallbackClosedDeals = 5

type hclFile struct {
	FallbackClosedDeals int         `hcl:"fallback_closed_deals,optional"`
	Targets             []hclTarget `hcl:"target,block"`
}

type hclTarget struct {
	Email   string  `hcl:"email,label"`
	Monthly float64 `hcl:"monthly"`
}

// Config holds the resolved monthly targets keyed by agent email.
type Config struct {
	FallbackClosedDeals int
	monthly             map[string]float64
}

// Default returns a config with no per-agent targets.
func Default() *Config {
	return &Config{
		FallbackClosedDeals: DefaultFallbackClosedDeals,
		monthly:             map[string]float64{},
	}
}

// Load parses a targets HCL file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets file: %w", err)
	}
	return Parse(src, path)
}

// Parse parses HCL source. The filename is used in error messages only.
func Parse(src []byte, filename string) (*Config, error) {
	var file hclFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok {
			for _, diag := range diags {
				if diag.Severity == hcl.DiagError {
					return nil, fmt.Errorf("targets parse error at %s: %s", diag.Subject, diag.Detail)
				}
			}
		}
		return nil, fmt.Errorf("parsing targets: %w", err)
	}

	cfg := Default()
	if file.FallbackClosedDeals > 0 {
		cfg.FallbackClosedDeals = file.FallbackClosedDeals
	}
	for _, t := range file.Targets {
		if t.Email == "" {
			return nil, fmt.Errorf("target block with empty email label in %s", filename)
		}
		if t.Monthly <= 0 {
			return nil, fmt.Errorf("target for %s must have a positive monthly amount", t.Email)
		}
		cfg.monthly[t.Email] = t.Monthly
	}
	return cfg, nil
}

// MonthlyFor returns the configured monthly target for an agent, or 0 when
// none is set.
func (c *Config) MonthlyFor(email string) float64 {
	return c.monthly[email]
}
