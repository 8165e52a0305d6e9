// Package textmine extracts pricing mentions, service coverage, sentiment
// keywords, and theme counts from customer review text.
//
// All operations are pure functions over their input: no I/O, deterministic,
// and total (there is no failure mode — empty input yields empty output).
package textmine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/compscan/internal/taxonomy"
)

// Miner mines review text against a fixed keyword taxonomy.
type Miner struct {
	tax *taxonomy.Taxonomy
}

// New creates a Miner over the given taxonomy. The taxonomy must not be
// mutated afterwards.
func New(tax *taxonomy.Taxonomy) *Miner {
	return &Miner{tax: tax}
}

// Pricing collects pricing mentions from each review's text. Patterns are
// applied per review in taxonomy order; results keep first-seen order and
// are deduplicated by exact reported substring. Patterns with a capture
// group report the captured amount rather than the whole match.
func (m *Miner) Pricing(reviewTexts []string) []string {
	var found []string
	seen := make(map[string]struct{})

	for _, text := range reviewTexts {
		lower := strings.ToLower(text)
		for _, re := range m.tax.PricingPatterns {
			for _, match := range re.FindAllStringSubmatch(lower, -1) {
				mention := match[0]
				if len(match) > 1 && match[1] != "" {
					mention = match[1]
				}
				if _, ok := seen[mention]; ok {
					continue
				}
				seen[mention] = struct{}{}
				found = append(found, mention)
			}
		}
	}

	return found
}

// Services returns the canonical title-cased service names whose vocabulary
// phrase occurs as a substring of text. The result is a set: each canonical
// name appears at most once, in vocabulary order.
func (m *Miner) Services(text string) []string {
	lower := strings.ToLower(text)
	titler := cases.Title(language.English)

	var services []string
	seen := make(map[string]struct{})
	for _, phrase := range m.tax.Services {
		if !strings.Contains(lower, phrase) {
			continue
		}
		canonical := titler.String(phrase)
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		services = append(services, canonical)
	}

	return services
}

// SentimentAndThemes concatenates all review texts into one lowercased blob
// and returns the positive and negative indicator phrases present anywhere
// in it (presence, not frequency), plus per-theme trigger occurrence counts.
// Only themes with a count > 0 appear in the map.
//
// Counting is substring-based: a trigger that is itself a substring of a
// longer trigger in the same theme is counted for both (e.g. "quote" inside
// "detailed quote"). This double-counting is a documented property of the
// extraction contract; callers ranking themes rely on it staying stable.
func (m *Miner) SentimentAndThemes(reviewTexts []string) (positive, negative []string, themes map[string]int) {
	blob := strings.ToLower(strings.Join(reviewTexts, " "))

	for _, kw := range m.tax.PositiveIndicators {
		if strings.Contains(blob, kw) {
			positive = append(positive, kw)
		}
	}
	for _, kw := range m.tax.NegativeIndicators {
		if strings.Contains(blob, kw) {
			negative = append(negative, kw)
		}
	}

	themes = make(map[string]int)
	for _, theme := range m.tax.Themes {
		count := 0
		for _, trigger := range theme.Triggers {
			count += strings.Count(blob, trigger)
		}
		if count > 0 {
			themes[theme.Name] = count
		}
	}

	return positive, negative, themes
}
