package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/compscan/internal/geo"
	"github.com/sells-group/compscan/internal/textmine"
	"github.com/sells-group/compscan/pkg/googlemaps"
)

// defaultDetailPause is the fixed delay after each detail fetch, keeping the
// sequential batch under the provider's rate expectations.
const defaultDetailPause = 100 * time.Millisecond

// Geocoder resolves a free-text address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}

// PlacesSearcher discovers nearby business stubs and fetches their details.
type PlacesSearcher interface {
	NearbySearch(ctx context.Context, origin geo.Coordinate, radiusMiles float64, keyword, category string) ([]googlemaps.BusinessStub, bool, error)
	PlaceDetails(ctx context.Context, placeID string) (googlemaps.DetailRecord, error)
}

// Options tunes an Analyzer.
type Options struct {
	// Keyword and Category filter the nearby search.
	Keyword  string
	Category string

	// DetailPause is the delay after each detail fetch. Zero means the
	// default; it exists so tests can shrink it.
	DetailPause time.Duration
}

// Analyzer runs the competitor-analysis pipeline: one blocking provider
// call at a time, soft failures degrade the batch instead of aborting it.
type Analyzer struct {
	geocoder Geocoder
	places   PlacesSearcher
	builder  *Builder
	opts     Options
}

// NewAnalyzer creates an Analyzer from its collaborators.
func NewAnalyzer(geocoder Geocoder, places PlacesSearcher, miner *textmine.Miner, opts Options) *Analyzer {
	if opts.Keyword == "" {
		opts.Keyword = "roofing contractor"
	}
	if opts.Category == "" {
		opts.Category = "general_contractor"
	}
	if opts.DetailPause == 0 {
		opts.DetailPause = defaultDetailPause
	}
	return &Analyzer{
		geocoder: geocoder,
		places:   places,
		builder:  NewBuilder(miner),
		opts:     opts,
	}
}

// Run executes one analysis for the given business address and search
// radius. A geocode failure is fatal and aborts the run; search pagination
// truncation and per-business detail misses degrade the result and set
// Partial instead.
func (a *Analyzer) Run(ctx context.Context, address string, radiusMiles float64) (*Result, error) {
	log := zap.L().With(zap.String("address", address))

	origin, err := a.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: geocode origin")
	}
	log.Info("origin resolved",
		zap.Float64("lat", origin.Lat),
		zap.Float64("lng", origin.Lng),
	)

	stubs, partial, err := a.places.NearbySearch(ctx, origin, radiusMiles, a.opts.Keyword, a.opts.Category)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: nearby search")
	}
	log.Info("competitors discovered",
		zap.Int("count", len(stubs)),
		zap.Float64("radius_miles", radiusMiles),
		zap.Bool("partial", partial),
	)

	competitors := make([]Competitor, 0, len(stubs))
	for i, stub := range stubs {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "analysis: run canceled")
		}

		detail, err := a.places.PlaceDetails(ctx, stub.PlaceID)
		if err != nil {
			log.Warn("detail fetch failed, skipping competitor",
				zap.String("place_id", stub.PlaceID),
				zap.String("name", stub.Name),
				zap.Error(err),
			)
			partial = true
			continue
		}
		if !detail.Found {
			log.Warn("detail record absent, skipping competitor",
				zap.String("place_id", stub.PlaceID),
				zap.String("name", stub.Name),
			)
			partial = true
			continue
		}

		competitors = append(competitors, a.builder.Build(stub, detail, origin))

		log.Debug("competitor profiled",
			zap.Int("index", i+1),
			zap.Int("total", len(stubs)),
			zap.String("name", stub.Name),
		)

		if err := pause(ctx, a.opts.DetailPause); err != nil {
			return nil, eris.Wrap(err, "analysis: run canceled")
		}
	}

	SortByDistance(competitors)

	result := &Result{
		RunID:       uuid.NewString(),
		Address:     address,
		Origin:      origin,
		RadiusMiles: radiusMiles,
		GeneratedAt: time.Now().UTC(),
		Partial:     partial,
		Competitors: competitors,
		Summary:     Aggregate(competitors),
	}

	log.Info("analysis complete",
		zap.String("run_id", result.RunID),
		zap.Int("competitors", len(competitors)),
		zap.Bool("partial", partial),
	)
	return result, nil
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
