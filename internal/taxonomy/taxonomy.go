// Package taxonomy defines the keyword taxonomy driving review text mining:
// discussion themes with trigger phrases, sentiment indicators, the canonical
// service vocabulary, and pricing-mention patterns.
//
// A Taxonomy is constructed once (Default or LoadFile) and treated as
// read-only afterwards; it is passed explicitly to the text miner rather
// than held as global state.
package taxonomy

import (
	"os"
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Theme is a named review-discussion category with its ordered trigger phrases.
type Theme struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// Taxonomy holds the full keyword configuration used by the text miner.
type Taxonomy struct {
	Themes             []Theme
	PositiveIndicators []string
	NegativeIndicators []string
	Services           []string

	// PricingPatterns are applied in order to each review's lowercased text.
	// A pattern may contain a single capture group selecting the substring
	// to report (contextual patterns capture just the dollar amount).
	PricingPatterns []*regexp.Regexp
}

// defaultPricingPatterns are the recognized pricing-mention shapes, in order:
// bare currency amounts, "N dollars" phrasing, cost/price/quote/estimate
// context followed by an amount, and per-square-foot pricing.
var defaultPricingPatterns = []string{
	`\$[\d,]+`,
	`[\d,]+\s*dollars?`,
	`cost[^$]*(\$[\d,]+)`,
	`price[^$]*(\$[\d,]+)`,
	`quote[^$]*(\$[\d,]+)`,
	`estimate[^$]*(\$[\d,]+)`,
	`\$[\d,]+.*?square\s*foot`,
	`[\d.]+\s*per\s*square\s*foot`,
}

// Default returns the built-in roofing-market taxonomy.
func Default() *Taxonomy {
	t := &Taxonomy{
		Themes: []Theme{
			{Name: "speed", Triggers: []string{"fast", "quick", "prompt", "timely", "on time", "efficient"}},
			{Name: "quality", Triggers: []string{"quality", "excellent", "professional", "skilled", "expert", "craftsmanship"}},
			{Name: "price", Triggers: []string{"affordable", "reasonable", "cheap", "expensive", "overpriced", "fair price"}},
			{Name: "communication", Triggers: []string{"responsive", "communicative", "explained", "kept informed", "poor communication"}},
			{Name: "cleanup", Triggers: []string{"clean", "cleanup", "messy", "left debris", "neat", "tidy"}},
			{Name: "warranty", Triggers: []string{"warranty", "guarantee", "stands behind work", "honor warranty"}},
			{Name: "insurance", Triggers: []string{"insurance", "claim", "insurance work", "help with insurance"}},
			{Name: "emergency", Triggers: []string{"emergency", "urgent", "storm damage", "leak", "immediate"}},
			{Name: "materials", Triggers: []string{"materials", "shingles", "metal", "tile", "membrane", "quality materials"}},
			{Name: "experience", Triggers: []string{"experienced", "years in business", "knowledgeable", "inexperienced"}},
			{Name: "scheduling", Triggers: []string{"flexible", "scheduling", "appointment", "showed up", "no show", "late"}},
			{Name: "estimate", Triggers: []string{"free estimate", "accurate estimate", "detailed quote", "overestimate", "quote"}},
		},
		NegativeIndicators: []string{
			"disappointed", "unprofessional", "rude", "late", "no show", "poor",
			"terrible", "awful", "bad", "worst", "avoid", "scam", "overcharged",
			"shoddy", "cheap work", "leaked", "failed", "damaged", "nightmare",
		},
		PositiveIndicators: []string{
			"excellent", "amazing", "professional", "recommend", "great", "fantastic",
			"wonderful", "outstanding", "perfect", "impressed", "satisfied", "happy",
			"reliable", "trustworthy", "honest", "fair", "quality work",
		},
		Services: []string{
			"roof repair", "roof replacement", "roof installation",
			"shingle", "metal roof", "tile roof", "flat roof",
			"gutter", "siding", "leak repair", "storm damage",
			"insurance claims", "emergency repair", "inspection",
			"maintenance", "ventilation", "skylight",
		},
	}

	for _, p := range defaultPricingPatterns {
		t.PricingPatterns = append(t.PricingPatterns, regexp.MustCompile(p))
	}
	return t
}

// file is the YAML shape of a taxonomy override file.
type file struct {
	Themes             []Theme  `yaml:"themes"`
	PositiveIndicators []string `yaml:"positive_indicators"`
	NegativeIndicators []string `yaml:"negative_indicators"`
	Services           []string `yaml:"services"`
	PricingPatterns    []string `yaml:"pricing_patterns"`
}

// LoadFile reads a taxonomy from a YAML file. Any section left empty in the
// file falls back to the built-in defaults, so a file can override just the
// service vocabulary for a different trade.
func LoadFile(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: read file")
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrap(err, "taxonomy: parse yaml")
	}

	t := Default()
	if len(f.Themes) > 0 {
		for _, th := range f.Themes {
			if th.Name == "" || len(th.Triggers) == 0 {
				return nil, eris.Errorf("taxonomy: theme %q must have a name and at least one trigger", th.Name)
			}
		}
		t.Themes = f.Themes
	}
	if len(f.PositiveIndicators) > 0 {
		t.PositiveIndicators = f.PositiveIndicators
	}
	if len(f.NegativeIndicators) > 0 {
		t.NegativeIndicators = f.NegativeIndicators
	}
	if len(f.Services) > 0 {
		t.Services = f.Services
	}
	if len(f.PricingPatterns) > 0 {
		t.PricingPatterns = nil
		for _, p := range f.PricingPatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, eris.Wrapf(err, "taxonomy: compile pricing pattern %q", p)
			}
			t.PricingPatterns = append(t.PricingPatterns, re)
		}
	}

	return t, nil
}
