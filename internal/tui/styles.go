package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette used across the form. InitializeSkin overwrites these.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("245")
	ColorNavy   = lipgloss.Color("17")
	ColorRed    = lipgloss.Color("196")
	ColorGreen  = lipgloss.Color("42")
	ColorOrange = lipgloss.Color("208")
	ColorWhite  = lipgloss.Color("255")
)

var (
	titleStyle        lipgloss.Style
	labelStyle        lipgloss.Style
	activeLabelStyle  lipgloss.Style
	mutedStyle        lipgloss.Style
	buttonStyle       lipgloss.Style
	activeButtonStyle lipgloss.Style
	notificationStyle lipgloss.Style
	resultStyle       lipgloss.Style
	sectionStyle      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SkinColors holds the color overrides of a skin file. Empty values keep
// the default.
type SkinColors struct {
	Primary      string `yaml:"primary"`
	Muted        string `yaml:"muted"`
	Background   string `yaml:"background"`
	Error        string `yaml:"error"`
	Success      string `yaml:"success"`
	BarDeposits  string `yaml:"bar-deposits"`
	BarEndAmount string `yaml:"bar-end-amount"`
	Text         string `yaml:"text"`
}

// Skin is the on-disk skin format.
type Skin struct {
	Name   string     `yaml:"name"`
	Colors SkinColors `yaml:"colors"`
}

var builtinSkins = map[string]Skin{
	"default": {Name: "default"},
	"mono": {
		Name: "mono",
		Colors: SkinColors{
			Primary:      "252",
			Muted:        "243",
			Background:   "235",
			Error:        "255",
			Success:      "252",
			BarDeposits:  "248",
			BarEndAmount: "255",
			Text:         "255",
		},
	},
}

// InitializeSkin applies a named skin. Built-in skins are resolved first,
// then <configDir>/skins/<name>.yml. On error the default palette stays
// active.
func InitializeSkin(name, configDir string) error {
	resetPalette()
	if name == "" {
		name = "default"
	}
	skin, ok := builtinSkins[name]
	if !ok {
		var err error
		skin, err = loadSkinFile(name, configDir)
		if err != nil {
			rebuildStyles()
			return err
		}
	}
	applySkin(skin)
	return nil
}

func loadSkinFile(name, configDir string) (Skin, error) {
	var skin Skin
	if configDir == "" {
		return skin, fmt.Errorf("skin %q: no config directory", name)
	}
	var data []byte
	var err error
	for _, ext := range []string{".yml", ".yaml"} {
		data, err = os.ReadFile(filepath.Join(configDir, "skins", name+ext))
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			break
		}
	}
	if err != nil {
		return skin, fmt.Errorf("reading skin %q: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return skin, fmt.Errorf("parsing skin %q: %w", name, err)
	}
	return skin, nil
}

var (
	barDepositsColor  = lipgloss.Color("39")
	barEndAmountColor = lipgloss.Color("208")
)

func resetPalette() {
	ColorBlue = lipgloss.Color("39")
	ColorGray = lipgloss.Color("245")
	ColorNavy = lipgloss.Color("17")
	ColorRed = lipgloss.Color("196")
	ColorGreen = lipgloss.Color("42")
	ColorOrange = lipgloss.Color("208")
	ColorWhite = lipgloss.Color("255")
	barDepositsColor = ColorBlue
	barEndAmountColor = ColorOrange
}

func applySkin(s Skin) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&ColorBlue, s.Colors.Primary)
	set(&ColorGray, s.Colors.Muted)
	set(&ColorNavy, s.Colors.Background)
	set(&ColorRed, s.Colors.Error)
	set(&ColorGreen, s.Colors.Success)
	set(&ColorWhite, s.Colors.Text)
	set(&barDepositsColor, s.Colors.BarDeposits)
	set(&barEndAmountColor, s.Colors.BarEndAmount)
	rebuildStyles()
}

func rebuildStyles() {
	titleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(ColorGray)
	activeLabelStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
	buttonStyle = lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorNavy).Padding(0, 1)
	activeButtonStyle = lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorBlue).Bold(true).Padding(0, 1)
	notificationStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	sectionStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorGray).Padding(0, 1)
}
