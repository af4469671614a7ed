package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	lex := Default()

	if len(lex.Categories) == 0 {
		t.Fatal("Default() should configure categories")
	}
	if lex.Categories[0].Key != "supermercado" {
		t.Errorf("first category = %q, want supermercado", lex.Categories[0].Key)
	}
	if lex.OtherCategory != "otros" {
		t.Errorf("OtherCategory = %q, want otros", lex.OtherCategory)
	}
	if lex.IncomeCategory != "ingreso" {
		t.Errorf("IncomeCategory = %q, want ingreso", lex.IncomeCategory)
	}
	if len(lex.AmountPatterns) == 0 || len(lex.TotalPatterns) == 0 {
		t.Error("Default() should compile amount and total pattern chains")
	}
	if len(lex.ConceptPatterns) == 0 {
		t.Error("Default() should compile one concept pattern per preposition")
	}
}

func TestDefault_RelativeDayOrder(t *testing.T) {
	lex := Default()

	// Longer keywords must come first so "anteayer" is not shadowed by
	// its "ayer" suffix.
	for i, rel := range lex.RelativeDays {
		if rel.Keyword != "ayer" {
			continue
		}
		for _, earlier := range lex.RelativeDays[:i] {
			if !strings.Contains(earlier.Keyword, "ayer") {
				continue
			}
			if len(earlier.Keyword) <= len(rel.Keyword) {
				t.Errorf("relative day %q must be declared before %q", earlier.Keyword, rel.Keyword)
			}
		}
	}
}

func TestFromConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no categories", func(c *Config) { c.Categories = nil }},
		{"missing other sentinel", func(c *Config) { c.OtherCategory = "" }},
		{"missing income sentinel", func(c *Config) { c.IncomeCategory = "" }},
		{"broken amount pattern", func(c *Config) { c.AmountPatterns = []string{`(\d`} }},
		{"broken line item pattern", func(c *Config) { c.LineItem = `([` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			if _, err := FromConfig(cfg); err == nil {
				t.Error("FromConfig() should fail")
			}
		})
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.json")
	content := `{"other_category": "uncategorized"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if lex.OtherCategory != "uncategorized" {
		t.Errorf("OtherCategory = %q, want uncategorized", lex.OtherCategory)
	}
	// Fields absent from the file keep the built-in defaults.
	if len(lex.Categories) == 0 {
		t.Error("categories should fall back to defaults")
	}
	if lex.IncomeCategory != "ingreso" {
		t.Errorf("IncomeCategory = %q, want default ingreso", lex.IncomeCategory)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile("/does/not/exist.json"); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should fail for invalid JSON")
	}
}
