package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Skin tests mutate package-level styles and must not run in parallel.

func TestInitializeSkin_Builtin(t *testing.T) {
	t.Cleanup(func() { _ = InitializeSkin("default", "") })

	if err := InitializeSkin("mono", ""); err != nil {
		t.Fatalf("InitializeSkin: %v", err)
	}
	if ColorBlue != lipgloss.Color("252") {
		t.Errorf("primary = %v, want 252", ColorBlue)
	}
	if err := InitializeSkin("", ""); err != nil {
		t.Fatalf("InitializeSkin default: %v", err)
	}
	if ColorBlue != lipgloss.Color("39") {
		t.Errorf("primary after reset = %v, want 39", ColorBlue)
	}
}

func TestInitializeSkin_File(t *testing.T) {
	t.Cleanup(func() { _ = InitializeSkin("default", "") })

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "skins"), 0755); err != nil {
		t.Fatal(err)
	}
	data := "name: ocean\ncolors:\n  primary: \"#00AAFF\"\n  error: \"#FF0000\"\n"
	if err := os.WriteFile(filepath.Join(dir, "skins", "ocean.yml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitializeSkin("ocean", dir); err != nil {
		t.Fatalf("InitializeSkin: %v", err)
	}
	if ColorBlue != lipgloss.Color("#00AAFF") {
		t.Errorf("primary = %v", ColorBlue)
	}
	if ColorRed != lipgloss.Color("#FF0000") {
		t.Errorf("error = %v", ColorRed)
	}
	if ColorGray != lipgloss.Color("245") {
		t.Errorf("unset muted color changed to %v", ColorGray)
	}
}

func TestInitializeSkin_MissingFallsBack(t *testing.T) {
	t.Cleanup(func() { _ = InitializeSkin("default", "") })

	err := InitializeSkin("nope", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing skin")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q does not name the skin", err)
	}
	if ColorBlue != lipgloss.Color("39") {
		t.Errorf("palette not reset: %v", ColorBlue)
	}
}

func TestInitializeSkin_BadYAML(t *testing.T) {
	t.Cleanup(func() { _ = InitializeSkin("default", "") })

	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "skins"), 0755)
	_ = os.WriteFile(filepath.Join(dir, "skins", "broken.yaml"), []byte("colors: [unterminated"), 0644)

	if err := InitializeSkin("broken", dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00 €"},
		{999.5, "999,50 €"},
		{12000, "12.000,00 €"},
		{1234567.891, "1.234.567,89 €"},
		{-8000, "-8.000,00 €"},
	}
	for _, tt := range tests {
		if got := formatEuro(tt.in); got != tt.want {
			t.Errorf("formatEuro(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOverviewChart(t *testing.T) {
	var c OverviewChart
	if !c.Empty() {
		t.Fatal("zero chart not empty")
	}
	if got := c.Render(80, 6); !strings.Contains(got, "Keine Daten") {
		t.Errorf("empty render = %q", got)
	}

	c.SetData(12000, 20000)
	out := c.Render(80, 6)
	for _, want := range []string{"Summe Einzahlungen", "12.000,00 €", "20.000,00 €", "Zinsertrag: 8.000,00 €"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
