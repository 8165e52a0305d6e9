package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/compscan/internal/geo"
)

// The provider serves at most three pages per nearby search.
const maxSearchPages = 3

const detailsFieldMask = "name,formatted_address,formatted_phone_number,rating,user_ratings_total,website,reviews"

// Provider status codes with dedicated handling.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// BusinessStub is the minimal business identity returned by a nearby search,
// prior to fetching full details.
type BusinessStub struct {
	PlaceID  string
	Name     string
	Location geo.Coordinate
}

// Review is a single customer review. Only the text is projected; the
// provider record carries more fields but the pipeline does not use them.
type Review struct {
	Text string `json:"text"`
}

// DetailRecord is the full profile for one business. Found is false when the
// provider reported a non-OK status for the lookup; callers must then skip
// the business rather than abort the batch.
type DetailRecord struct {
	Found       bool
	Name        string
	Address     string
	Phone       string
	Rating      float64
	ReviewCount int
	Website     string
	Reviews     []Review
}

type nearbySearchResponse struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status        string `json:"status"`
	NextPageToken string `json:"next_page_token"`
}

type placeDetailsResponse struct {
	Result struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		FormattedPhone   string   `json:"formatted_phone_number"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Website          string   `json:"website"`
		Reviews          []Review `json:"reviews"`
	} `json:"result"`
	Status string `json:"status"`
}

// NearbySearch discovers businesses around origin within radiusMiles,
// filtered by keyword and category. It accumulates all result pages,
// waiting the configured settling delay before consuming each pagination
// token. A non-OK status on a follow-up page truncates pagination and
// returns the partial list with partial=true rather than discarding the
// run. ZERO_RESULTS on the first page returns an empty list and no error.
func (c *Client) NearbySearch(ctx context.Context, origin geo.Coordinate, radiusMiles float64, keyword, category string) (stubs []BusinessStub, partial bool, err error) {
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", origin.Lat, origin.Lng)},
		"radius":   {strconv.Itoa(int(radiusMiles * metersPerMile))},
		"keyword":  {keyword},
		"type":     {category},
	}

	for page := 0; page < maxSearchPages; page++ {
		if page > 0 {
			if err := sleep(ctx, c.pageTokenDelay); err != nil {
				return stubs, true, nil
			}
		}

		var resp nearbySearchResponse
		if err := c.getJSON(ctx, c.placesBaseURL+"/nearbysearch/json", params, &resp); err != nil {
			if page == 0 {
				return nil, false, err
			}
			zap.L().Warn("nearby search page failed, returning partial results",
				zap.Int("page", page),
				zap.Error(err),
			)
			return stubs, true, nil
		}

		if resp.Status != statusOK {
			if page == 0 {
				if resp.Status == statusZeroResults {
					return nil, false, nil
				}
				return nil, false, eris.Errorf("googlemaps: nearby search status %s", resp.Status)
			}
			zap.L().Warn("nearby search page rejected, returning partial results",
				zap.Int("page", page),
				zap.String("status", resp.Status),
			)
			return stubs, true, nil
		}

		for _, r := range resp.Results {
			stubs = append(stubs, BusinessStub{
				PlaceID:  r.PlaceID,
				Name:     r.Name,
				Location: geo.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			})
		}

		if resp.NextPageToken == "" {
			return stubs, false, nil
		}
		params.Set("pagetoken", resp.NextPageToken)
	}

	return stubs, false, nil
}

// PlaceDetails fetches the fixed field projection for one business. A non-OK
// provider status is a soft failure: it returns a zero DetailRecord with
// Found=false and no error.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (DetailRecord, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFieldMask},
	}

	var resp placeDetailsResponse
	if err := c.getJSON(ctx, c.placesBaseURL+"/details/json", params, &resp); err != nil {
		return DetailRecord{}, err
	}

	if resp.Status != statusOK {
		zap.L().Debug("place details unavailable",
			zap.String("place_id", placeID),
			zap.String("status", resp.Status),
		)
		return DetailRecord{}, nil
	}

	return DetailRecord{
		Found:       true,
		Name:        resp.Result.Name,
		Address:     resp.Result.FormattedAddress,
		Phone:       resp.Result.FormattedPhone,
		Rating:      resp.Result.Rating,
		ReviewCount: resp.Result.UserRatingsTotal,
		Website:     resp.Result.Website,
		Reviews:     resp.Result.Reviews,
	}, nil
}
