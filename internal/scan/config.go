package scan

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed ruleset.yaml
var defaultRuleSet []byte

// ContrastConfig drives the color contrast rule.
type ContrastConfig struct {
	// MinimumRatio is the WCAG AA threshold for normal text.
	MinimumRatio float64 `yaml:"minimum_ratio"`
	// BackgroundColor is the assumed page background as a hex triplet.
	BackgroundColor string `yaml:"background_color"`
}

// FontSizeConfig drives the minimum font size rule.
type FontSizeConfig struct {
	MinimumPoints float64 `yaml:"minimum_points"`
}

// HeadingConfig drives the fake-heading detection heuristics.
type HeadingConfig struct {
	// MaxFakeHeadingWords is the longest run of words still considered
	// heading-like.
	MaxFakeHeadingWords int `yaml:"max_fake_heading_words"`
	// MinFakeHeadingSizePoints marks oversized body text as heading-like.
	MinFakeHeadingSizePoints float64 `yaml:"min_fake_heading_size_points"`
}

// LinkTextConfig drives the vague link text rule.
type LinkTextConfig struct {
	VaguePhrases []string `yaml:"vague_phrases"`
	// LinkStyleColor flags runs that merely look like links (the classic
	// hyperlink blue) without a w:hyperlink wrapper.
	LinkStyleColor string `yaml:"link_style_color"`
}

// AltTextConfig drives the missing alternative text rule.
type AltTextConfig struct {
	// VisualReferences are phrases that indicate the text refers to a
	// chart, figure, or image.
	VisualReferences []string `yaml:"visual_references"`
}

// Config is the scanner rule set. The embedded ruleset.yaml supplies
// defaults; a file path can override it.
type Config struct {
	Contrast ContrastConfig `yaml:"contrast"`
	FontSize FontSizeConfig `yaml:"font_size"`
	Heading  HeadingConfig  `yaml:"heading"`
	LinkText LinkTextConfig `yaml:"link_text"`
	AltText  AltTextConfig  `yaml:"alt_text"`
}

// DefaultConfig returns the embedded rule set.
func DefaultConfig() *Config {
	cfg, err := parseConfig(defaultRuleSet)
	if err != nil {
		// The embedded rule set is validated by tests; failing to parse it
		// is a build defect.
		panic(fmt.Sprintf("scan: embedded ruleset invalid: %v", err))
	}
	return cfg
}

// LoadConfig reads a rule set from path, or returns the embedded defaults
// when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	if cfg.Contrast.MinimumRatio <= 0 {
		return nil, fmt.Errorf("rule set: contrast.minimum_ratio must be positive")
	}
	if cfg.FontSize.MinimumPoints <= 0 {
		return nil, fmt.Errorf("rule set: font_size.minimum_points must be positive")
	}
	return &cfg, nil
}
