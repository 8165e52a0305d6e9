package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compscan/internal/analysis"
	"github.com/sells-group/compscan/internal/taxonomy"
	"github.com/sells-group/compscan/internal/textmine"
	"github.com/sells-group/compscan/pkg/googlemaps"
)

// initAnalyzer wires the provider client, taxonomy and text miner into a
// ready-to-run Analyzer from the loaded config.
func initAnalyzer(taxonomyFile string) (*analysis.Analyzer, error) {
	if cfg.Google.APIKey == "" {
		return nil, eris.New("google.api_key is required (set COMPSCAN_GOOGLE_API_KEY)")
	}

	tax := taxonomy.Default()
	if taxonomyFile == "" {
		taxonomyFile = cfg.Search.TaxonomyFile
	}
	if taxonomyFile != "" {
		loaded, err := taxonomy.LoadFile(taxonomyFile)
		if err != nil {
			return nil, eris.Wrap(err, "load taxonomy file")
		}
		tax = loaded
	}

	client := googlemaps.NewClient(cfg.Google.APIKey,
		googlemaps.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Google.TimeoutSecs) * time.Second}),
		googlemaps.WithGeocodeBaseURL(cfg.Google.GeocodeBaseURL),
		googlemaps.WithPlacesBaseURL(cfg.Google.PlacesBaseURL),
		googlemaps.WithRateLimit(cfg.Google.RateLimit),
		googlemaps.WithPageTokenDelay(time.Duration(cfg.Search.PageDelaySecs)*time.Second),
	)

	return analysis.NewAnalyzer(client, client, textmine.New(tax), analysis.Options{
		Keyword:     cfg.Search.Keyword,
		Category:    cfg.Search.Category,
		DetailPause: time.Duration(cfg.Search.DetailPauseMS) * time.Millisecond,
	}), nil
}
