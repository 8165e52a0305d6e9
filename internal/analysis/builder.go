package analysis

import (
	"math"
	"strings"

	"github.com/sells-group/compscan/internal/geo"
	"github.com/sells-group/compscan/internal/textmine"
	"github.com/sells-group/compscan/pkg/googlemaps"
)

// Builder composes provider records and text-mining output into Competitor
// profiles.
type Builder struct {
	miner *textmine.Miner
}

// NewBuilder creates a Builder over the given text miner.
func NewBuilder(miner *textmine.Miner) *Builder {
	return &Builder{miner: miner}
}

// Build assembles a Competitor from a search stub and its detail record.
// Every missing field gets an explicit default; a sparse provider record
// yields a best-effort profile, never an error. (A detail record that is
// absent entirely is the caller's signal to skip the stub instead.)
func (b *Builder) Build(stub googlemaps.BusinessStub, detail googlemaps.DetailRecord, origin geo.Coordinate) Competitor {
	texts := make([]string, 0, len(detail.Reviews))
	for _, r := range detail.Reviews {
		texts = append(texts, r.Text)
	}

	name := detail.Name
	if name == "" {
		name = stub.Name
	}
	if name == "" {
		name = unknownValue
	}

	positive, negative, themes := b.miner.SentimentAndThemes(texts)

	return Competitor{
		Name:             name,
		Address:          stringOr(detail.Address, unknownValue),
		Phone:            stringOr(detail.Phone, notAvailable),
		Rating:           clampRating(detail.Rating),
		ReviewCount:      max(detail.ReviewCount, 0),
		Website:          stringOr(detail.Website, notAvailable),
		DistanceMiles:    roundMiles(geo.Miles(origin, stub.Location)),
		PricingInfo:      b.miner.Pricing(texts),
		Services:         b.miner.Services(strings.Join(texts, " ") + " " + name),
		PositiveKeywords: positive,
		NegativeKeywords: negative,
		ReviewThemes:     themes,
	}
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func clampRating(r float64) float64 {
	return math.Min(math.Max(r, 0), 5)
}

// roundMiles rounds to 2 decimal places for display; the distance
// calculator itself stays full precision.
func roundMiles(d float64) float64 {
	return math.Round(d*100) / 100
}
