package property

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func filterAll(items []*Property, c Criteria) []*Property {
	preds := c.Predicates()
	var out []*Property
	for _, p := range items {
		if MatchAll(p, preds) {
			out = append(out, p)
		}
	}
	return out
}

func sampleProperties() []*Property {
	return []*Property{
		{ID: 1, Title: "Family House", Type: "house", City: "Austin", Bedrooms: 3, Price: 300000, PropertyStatus: StatusPublished, Status: "sale"},
		{ID: 2, Title: "Downtown Condo", Type: "condo", City: "Dallas", Bedrooms: 2, Price: 150000, PropertyStatus: StatusPublished, Status: "rent"},
		{ID: 3, Title: "Big House", Type: "house", City: "Austin", Bedrooms: 4, Price: 400000, PropertyStatus: StatusDraft, Status: "sale"},
	}
}

func ids(items []*Property) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestCriteria_PublishedPredicateAlwaysFirst(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		count    int
	}{
		{name: "empty", criteria: Criteria{}, count: 1},
		{name: "search only", criteria: Criteria{Search: "house"}, count: 2},
		{
			name: "everything",
			criteria: Criteria{
				Search:        "house",
				PropertyTypes: []string{"house"},
				City:          "Austin",
				Cities:        []string{"Austin", "Dallas"},
				MaxBedrooms:   intPtr(3),
				MaxPrice:      floatPtr(350000),
				Status:        "sale",
			},
			count: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := tt.criteria.Predicates()
			require.Len(t, preds, tt.count)
			require.Equal(t, Published(), preds[0])
		})
	}
}

func TestCriteria_EmptyReturnsPublishedSet(t *testing.T) {
	got := filterAll(sampleProperties(), Criteria{})
	require.Equal(t, []int64{1, 2}, ids(got))
}

func TestCriteria_EveryResultIsPublished(t *testing.T) {
	combos := []Criteria{
		{},
		{Search: "House"},
		{PropertyTypes: []string{"house"}},
		{City: "Austin"},
		{MaxBedrooms: intPtr(10)},
		{MaxPrice: floatPtr(1e9)},
		{Status: "sale"},
		{PropertyTypes: []string{"house", "condo"}, Cities: []string{"Austin", "Dallas"}},
	}
	for _, c := range combos {
		for _, p := range filterAll(sampleProperties(), c) {
			require.Equal(t, StatusPublished, p.PropertyStatus)
		}
	}
}

func TestCriteria_EmptyTypesIsNoConstraint(t *testing.T) {
	require.Equal(t,
		ids(filterAll(sampleProperties(), Criteria{})),
		ids(filterAll(sampleProperties(), Criteria{PropertyTypes: []string{}})),
	)
	require.Equal(t,
		ids(filterAll(sampleProperties(), Criteria{})),
		ids(filterAll(sampleProperties(), Criteria{PropertyTypes: []string{" ", ""}})),
	)
}

func TestCriteria_SingleCityAndCities(t *testing.T) {
	got := filterAll(sampleProperties(), Criteria{City: "Austin"})
	require.Equal(t, []int64{1}, ids(got))

	got = filterAll(sampleProperties(), Criteria{Cities: []string{"Austin", "Dallas"}})
	require.Equal(t, []int64{1, 2}, ids(got))
}

func TestCriteria_TypeAndMaxPriceScenario(t *testing.T) {
	got := filterAll(sampleProperties(), Criteria{
		PropertyTypes: []string{"house"},
		MaxPrice:      floatPtr(350000),
	})
	require.Equal(t, []int64{1}, ids(got))
}

func TestCriteria_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := filterAll(sampleProperties(), Criteria{Search: "condo"})
	require.Equal(t, []int64{2}, ids(got))
}

func TestCriteria_MaxBedroomsAndStatus(t *testing.T) {
	got := filterAll(sampleProperties(), Criteria{MaxBedrooms: intPtr(2)})
	require.Equal(t, []int64{2}, ids(got))

	got = filterAll(sampleProperties(), Criteria{Status: "sale"})
	require.Equal(t, []int64{1}, ids(got))
}

func TestCriteria_DuplicateValuesCompacted(t *testing.T) {
	preds := Criteria{Cities: []string{"Austin", "Austin", " Dallas "}}.Predicates()
	require.Len(t, preds, 2)
	require.Equal(t, []string{"Austin", "Dallas"}, preds[1].Value)
}

func TestPredicate_UnknownFieldNeverMatches(t *testing.T) {
	pr := Predicate{Field: Field("nope"), Op: OpEq, Value: "x"}
	require.False(t, pr.Matches(&Property{}))
}

func TestPredicate_FeaturedAndOwner(t *testing.T) {
	p := &Property{UserID: 7, IsFeatured: true}
	require.True(t, Featured().Matches(p))
	require.True(t, OwnedBy(7).Matches(p))
	require.False(t, OwnedBy(8).Matches(p))
}
