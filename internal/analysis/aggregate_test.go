package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)

	assert.Zero(t, s.TotalCompetitors)
	assert.False(t, s.HasRatingData)
	assert.Zero(t, s.TotalReviews)
	assert.Nil(t, s.Closest)
	assert.Empty(t, s.ComplaintFrequency)
	assert.Empty(t, s.ThemeFrequency)
	assert.Empty(t, s.ServiceGaps)
	assert.Empty(t, s.RatingDistribution)
}

func TestAggregate_ZeroRatingExcludedFromAverage(t *testing.T) {
	competitors := []Competitor{
		{Name: "A", Rating: 4.0, ReviewCount: 10, DistanceMiles: 1.0},
		{Name: "B", Rating: 0.0, ReviewCount: 5, DistanceMiles: 2.0},
		{Name: "C", Rating: 5.0, ReviewCount: 20, DistanceMiles: 3.0},
	}

	s := Aggregate(competitors)

	require.True(t, s.HasRatingData)
	assert.InDelta(t, 4.5, s.AverageRating, 0.001)
	// Zero-rating competitors still count toward totals.
	assert.Equal(t, 3, s.TotalCompetitors)
	assert.Equal(t, 35, s.TotalReviews)
}

func TestAggregate_AllUnrated(t *testing.T) {
	s := Aggregate([]Competitor{
		{Name: "A", ReviewCount: 3, DistanceMiles: 1.0},
		{Name: "B", ReviewCount: 4, DistanceMiles: 2.0},
	})

	assert.False(t, s.HasRatingData)
	assert.Zero(t, s.AverageRating)
	assert.Equal(t, 7, s.TotalReviews)
}

func TestAggregate_Closest(t *testing.T) {
	s := Aggregate([]Competitor{
		{Name: "Far", DistanceMiles: 4.2},
		{Name: "Near", DistanceMiles: 0.7},
		{Name: "NearToo", DistanceMiles: 0.7},
	})

	require.NotNil(t, s.Closest)
	// Ties go to the first encountered.
	assert.Equal(t, "Near", s.Closest.Name)
}

func TestAggregate_ComplaintAndThemeRanking(t *testing.T) {
	competitors := []Competitor{
		{Name: "A", NegativeKeywords: []string{"late", "rude"}, ReviewThemes: map[string]int{"speed": 3, "price": 1}},
		{Name: "B", NegativeKeywords: []string{"late"}, ReviewThemes: map[string]int{"speed": 2, "warranty": 4}},
		{Name: "C", NegativeKeywords: []string{"late", "scam"}, ReviewThemes: map[string]int{"price": 1}},
	}

	s := Aggregate(competitors)

	require.NotEmpty(t, s.ComplaintFrequency)
	assert.Equal(t, KeywordCount{Keyword: "late", Count: 3}, s.ComplaintFrequency[0])
	// Equal counts rank alphabetically for determinism.
	assert.Equal(t, KeywordCount{Keyword: "rude", Count: 1}, s.ComplaintFrequency[1])
	assert.Equal(t, KeywordCount{Keyword: "scam", Count: 1}, s.ComplaintFrequency[2])

	require.Len(t, s.ThemeFrequency, 3)
	assert.Equal(t, KeywordCount{Keyword: "speed", Count: 5}, s.ThemeFrequency[0])
	assert.Equal(t, KeywordCount{Keyword: "warranty", Count: 4}, s.ThemeFrequency[1])
	assert.Equal(t, KeywordCount{Keyword: "price", Count: 2}, s.ThemeFrequency[2])
}

func TestAggregate_ServiceGapThresholdIsStrict(t *testing.T) {
	gutter := []string{"Gutter"}

	// 1 of 2 offers Gutter: ratio 0.5, not a gap.
	s := Aggregate([]Competitor{{Name: "A", Services: gutter}, {Name: "B"}})
	assert.Empty(t, s.ServiceGaps)

	// 1 of 3: ratio ~0.333, still not a gap.
	s = Aggregate([]Competitor{{Name: "A", Services: gutter}, {Name: "B"}, {Name: "C"}})
	assert.Empty(t, s.ServiceGaps)

	// 1 of 4: ratio 0.25, flagged.
	s = Aggregate([]Competitor{{Name: "A", Services: gutter}, {Name: "B"}, {Name: "C"}, {Name: "D"}})
	require.Len(t, s.ServiceGaps, 1)
	assert.Equal(t, "Gutter", s.ServiceGaps[0].Service)
	assert.Equal(t, 1, s.ServiceGaps[0].Offered)
	assert.Equal(t, 4, s.ServiceGaps[0].Total)
	assert.InDelta(t, 0.25, s.ServiceGaps[0].Ratio, 0.001)
}

func TestAggregate_ExactThresholdNotAGap(t *testing.T) {
	// 3 of 10 offer the service: ratio exactly 0.30 is not a gap.
	competitors := make([]Competitor, 10)
	for i := range competitors {
		competitors[i] = Competitor{Name: "X"}
	}
	for i := 0; i < 3; i++ {
		competitors[i].Services = []string{"Skylight"}
	}

	s := Aggregate(competitors)
	assert.Empty(t, s.ServiceGaps)
}

func TestAggregate_RatingDistribution(t *testing.T) {
	s := Aggregate([]Competitor{
		{Name: "A", Rating: 4.6},
		{Name: "B", Rating: 4.4},
		{Name: "C", Rating: 3.1},
		{Name: "D", Rating: 0}, // unrated, excluded
	})

	require.Len(t, s.RatingDistribution, 2)
	assert.Equal(t, RatingBucket{Rating: 3.0, Count: 1}, s.RatingDistribution[0])
	assert.Equal(t, RatingBucket{Rating: 4.5, Count: 2}, s.RatingDistribution[1])
}

func TestSortByDistance_Stable(t *testing.T) {
	competitors := []Competitor{
		{Name: "Third", DistanceMiles: 5.0},
		{Name: "FirstTied", DistanceMiles: 1.5},
		{Name: "SecondTied", DistanceMiles: 1.5},
	}

	SortByDistance(competitors)

	assert.Equal(t, "FirstTied", competitors[0].Name)
	assert.Equal(t, "SecondTied", competitors[1].Name)
	assert.Equal(t, "Third", competitors[2].Name)
}
