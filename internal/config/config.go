package config

import (
	"fmt"
	"slices"
)

// MaxRecent is how many recently used durations are remembered.
const MaxRecent = 5

// BoxStyles lists the accepted box_style values.
var BoxStyles = []string{"simple", "double", "rounded"}

// ColorRoles lists the config keys that name a color.
var ColorRoles = []string{"accent_color", "text_color", "error_color", "warning_color", "success_color"}

// Config is the persisted user preference record.
type Config struct {
	Theme         string `json:"theme" yaml:"theme" toml:"theme"`
	BoxStyle      string `json:"box_style" yaml:"box_style" toml:"box_style"`
	AccentColor   string `json:"accent_color" yaml:"accent_color" toml:"accent_color"`
	TextColor     string `json:"text_color" yaml:"text_color" toml:"text_color"`
	ErrorColor    string `json:"error_color" yaml:"error_color" toml:"error_color"`
	WarningColor  string `json:"warning_color" yaml:"warning_color" toml:"warning_color"`
	SuccessColor  string `json:"success_color" yaml:"success_color" toml:"success_color"`
	LastUsedTimes []int  `json:"last_used_times" yaml:"last_used_times" toml:"last_used_times"`
	Language      string `json:"language" yaml:"language" toml:"language"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:         "dark",
		BoxStyle:      "rounded",
		AccentColor:   "cyan",
		TextColor:     "white",
		ErrorColor:    "red",
		WarningColor:  "yellow",
		SuccessColor:  "green",
		LastUsedTimes: []int{30, 60, 120},
		Language:      "en",
	}
}

// fillDefaults replaces empty fields with their defaults and drops
// non-positive or excess recent entries.
func (c *Config) fillDefaults() {
	d := Default()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Theme, d.Theme)
	fill(&c.BoxStyle, d.BoxStyle)
	fill(&c.AccentColor, d.AccentColor)
	fill(&c.TextColor, d.TextColor)
	fill(&c.ErrorColor, d.ErrorColor)
	fill(&c.WarningColor, d.WarningColor)
	fill(&c.SuccessColor, d.SuccessColor)
	fill(&c.Language, d.Language)

	if c.LastUsedTimes == nil {
		c.LastUsedTimes = d.LastUsedTimes
	}
	recent := c.LastUsedTimes[:0:0]
	for _, m := range c.LastUsedTimes {
		if m > 0 && !slices.Contains(recent, m) {
			recent = append(recent, m)
		}
	}
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	c.LastUsedTimes = recent
}

// Validate reports fields that cannot be used as-is.
func (c *Config) Validate() error {
	if !slices.Contains(BoxStyles, c.BoxStyle) {
		return fmt.Errorf("box_style %q is not one of %v", c.BoxStyle, BoxStyles)
	}
	if len(c.LastUsedTimes) > MaxRecent {
		return fmt.Errorf("last_used_times holds %d entries, at most %d allowed", len(c.LastUsedTimes), MaxRecent)
	}
	for _, m := range c.LastUsedTimes {
		if m <= 0 {
			return fmt.Errorf("last_used_times entry %d must be positive", m)
		}
	}
	return nil
}

// AddRecent moves minutes to the front of LastUsedTimes, removing any earlier
// occurrence and keeping at most MaxRecent entries.
func (c *Config) AddRecent(minutes int) {
	recent := make([]int, 0, MaxRecent)
	recent = append(recent, minutes)
	for _, m := range c.LastUsedTimes {
		if m != minutes {
			recent = append(recent, m)
		}
	}
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	c.LastUsedTimes = recent
}

// MostRecent returns the most recently used duration in minutes.
func (c *Config) MostRecent() (int, bool) {
	if len(c.LastUsedTimes) == 0 {
		return 0, false
	}
	return c.LastUsedTimes[0], true
}

// ColorFor returns the configured color for a role such as "error_color",
// falling back to the accent color for unknown roles.
func (c *Config) ColorFor(role string) string {
	switch role {
	case "text_color":
		return c.TextColor
	case "error_color":
		return c.ErrorColor
	case "warning_color":
		return c.WarningColor
	case "success_color":
		return c.SuccessColor
	default:
		return c.AccentColor
	}
}
