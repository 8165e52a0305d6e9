package analysis

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// ServiceGapThreshold flags a service as underserved when the fraction of
// competitors offering it is strictly below this value.
const ServiceGapThreshold = 0.30

// KeywordCount is one entry of a descending frequency ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ServiceGap describes a service offered by too few competitors.
type ServiceGap struct {
	Service string  `json:"service"`
	Offered int     `json:"offered"`
	Total   int     `json:"total"`
	Ratio   float64 `json:"ratio"`
}

// RatingBucket is one half-star histogram bucket over competitors with a
// nonzero rating.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// Summary holds the cross-competitor aggregates for one analysis run.
type Summary struct {
	TotalCompetitors int `json:"total_competitors"`

	// AverageRating is the mean rating over competitors with rating > 0.
	// HasRatingData is false when that subset is empty; AverageRating is
	// then meaningless and renders as "no data".
	AverageRating float64 `json:"average_rating"`
	HasRatingData bool    `json:"has_rating_data"`

	TotalReviews int `json:"total_reviews"`

	// Closest is the minimum-distance competitor; nil when there are none.
	Closest *Competitor `json:"closest,omitempty"`

	ComplaintFrequency []KeywordCount `json:"complaint_frequency"`
	ThemeFrequency     []KeywordCount `json:"theme_frequency"`
	ServiceGaps        []ServiceGap   `json:"service_gaps"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
}

// SortByDistance orders competitors ascending by distance, in place. The
// sort is stable: equal distances keep their discovery order.
func SortByDistance(competitors []Competitor) {
	sort.SliceStable(competitors, func(i, j int) bool {
		return competitors[i].DistanceMiles < competitors[j].DistanceMiles
	})
}

// Aggregate computes summary statistics, complaint/theme frequency
// rankings, and service-gap analysis over the full competitor collection.
// An empty collection yields a zero Summary with HasRatingData=false.
func Aggregate(competitors []Competitor) Summary {
	s := Summary{TotalCompetitors: len(competitors)}

	rated := lo.Filter(competitors, func(c Competitor, _ int) bool {
		return c.Rating > 0
	})
	if len(rated) > 0 {
		s.AverageRating = lo.SumBy(rated, func(c Competitor) float64 { return c.Rating }) / float64(len(rated))
		s.HasRatingData = true
	}

	s.TotalReviews = lo.SumBy(competitors, func(c Competitor) int { return c.ReviewCount })

	for i := range competitors {
		if s.Closest == nil || competitors[i].DistanceMiles < s.Closest.DistanceMiles {
			closest := competitors[i]
			s.Closest = &closest
		}
	}

	complaints := make(map[string]int)
	themes := make(map[string]int)
	serviceCounts := make(map[string]int)
	for _, c := range competitors {
		for _, kw := range c.NegativeKeywords {
			complaints[kw]++
		}
		for theme, count := range c.ReviewThemes {
			themes[theme] += count
		}
		for _, svc := range c.Services {
			serviceCounts[svc]++
		}
	}

	s.ComplaintFrequency = rankCounts(complaints)
	s.ThemeFrequency = rankCounts(themes)
	s.ServiceGaps = findServiceGaps(serviceCounts, len(competitors))
	s.RatingDistribution = ratingHistogram(rated)

	return s
}

// rankCounts converts a frequency map into a ranking sorted by count
// descending, then keyword ascending so equal counts order deterministically.
func rankCounts(counts map[string]int) []KeywordCount {
	ranked := lo.MapToSlice(counts, func(k string, v int) KeywordCount {
		return KeywordCount{Keyword: k, Count: v}
	})
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	return ranked
}

// findServiceGaps flags every observed service offered by strictly less
// than ServiceGapThreshold of the competitor pool. A ratio of exactly the
// threshold is not a gap.
func findServiceGaps(serviceCounts map[string]int, total int) []ServiceGap {
	if total == 0 {
		return nil
	}

	var gaps []ServiceGap
	for svc, count := range serviceCounts {
		ratio := float64(count) / float64(total)
		if ratio < ServiceGapThreshold {
			gaps = append(gaps, ServiceGap{Service: svc, Offered: count, Total: total, Ratio: ratio})
		}
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Ratio != gaps[j].Ratio {
			return gaps[i].Ratio < gaps[j].Ratio
		}
		return gaps[i].Service < gaps[j].Service
	})
	return gaps
}

// ratingHistogram buckets nonzero ratings to the nearest half star.
func ratingHistogram(rated []Competitor) []RatingBucket {
	buckets := make(map[float64]int)
	for _, c := range rated {
		buckets[math.Round(c.Rating*2)/2]++
	}

	hist := lo.MapToSlice(buckets, func(rating float64, count int) RatingBucket {
		return RatingBucket{Rating: rating, Count: count}
	})
	sort.Slice(hist, func(i, j int) bool { return hist[i].Rating < hist[j].Rating })
	return hist
}
