package config

import (
	"testing"
)

func TestDefault_Values(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %v, want 30", c.RequestTimeout)
	}
	if c.MaxConcurrent != 10 {
		t.Errorf("MaxConcurrent = %v, want 10", c.MaxConcurrent)
	}
	if len(c.TotalCategories) != 7 {
		t.Errorf("TotalCategories = %d categories, want 7", len(c.TotalCategories))
	}
	if c.TotalsMultiplier <= 0 {
		t.Errorf("TotalsMultiplier = %v, want > 0", c.TotalsMultiplier)
	}
	if c.MaxProbePage != 10000 {
		t.Errorf("MaxProbePage = %v, want 10000", c.MaxProbePage)
	}
	if c.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", c.Theme)
	}
}
