// Package analysis implements the competitor-analysis pipeline: profile
// assembly from provider records, cross-competitor aggregation, and the
// sequential orchestration that ties geocoding, nearby search, detail
// retrieval, and review text mining together.
package analysis

import (
	"time"

	"github.com/sells-group/compscan/internal/geo"
)

// Default substitutions for fields missing from a provider detail record.
const (
	unknownValue = "Unknown"
	notAvailable = "Not available"
)

// Competitor is the assembled market-intelligence profile for one nearby
// business. It is immutable once built and lives only for the duration of
// one analysis run.
type Competitor struct {
	Name             string         `json:"name"`
	Address          string         `json:"address"`
	Phone            string         `json:"phone"`
	Rating           float64        `json:"rating"`
	ReviewCount      int            `json:"review_count"`
	Website          string         `json:"website"`
	DistanceMiles    float64        `json:"distance_miles"`
	PricingInfo      []string       `json:"pricing_info"`
	Services         []string       `json:"services"`
	PositiveKeywords []string       `json:"positive_keywords"`
	NegativeKeywords []string       `json:"negative_keywords"`
	ReviewThemes     map[string]int `json:"review_themes"`
}

// Result is the output of one analysis run: the competitor sequence sorted
// ascending by distance (discovery order breaks ties) plus the derived
// aggregates. Partial is true when pagination soft-stopped or any detail
// fetch was skipped, so the list may be smaller than the market.
type Result struct {
	RunID       string         `json:"run_id"`
	Address     string         `json:"address"`
	Origin      geo.Coordinate `json:"origin"`
	RadiusMiles float64        `json:"radius_miles"`
	GeneratedAt time.Time      `json:"generated_at"`
	Partial     bool           `json:"partial"`
	Competitors []Competitor   `json:"competitors"`
	Summary     Summary        `json:"summary"`
}
