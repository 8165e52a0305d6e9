package googlemaps

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compscan/internal/geo"
)

// ErrGeocode marks a geocoding failure. It is fatal for an analysis run:
// every distance and search operation depends on the origin coordinate.
var ErrGeocode = eris.New("googlemaps: geocode failed")

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode resolves a free-text address to a coordinate. Any non-OK provider
// status, including ZERO_RESULTS, yields an error wrapping ErrGeocode that
// carries the provider's status reason.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	params := url.Values{"address": {address}}

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeBaseURL+"/json", params, &resp); err != nil {
		return geo.Coordinate{}, err
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		return geo.Coordinate{}, eris.Wrapf(ErrGeocode, "provider status %s", resp.Status)
	}

	loc := resp.Results[0].Geometry.Location
	return geo.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
