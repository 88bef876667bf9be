package geo_test

import (
	"testing"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/service/geo"

	"github.com/stretchr/testify/assert"
)

func TestCityToCoordinates(t *testing.T) {
	t.Run("Known City", func(t *testing.T) {
		coords, ok := geo.CityToCoordinates("pune")
		assert.True(t, ok)
		assert.InDelta(t, 18.5204, coords.Lat, 0.0001)
		assert.InDelta(t, 73.8567, coords.Lon, 0.0001)
	})

	t.Run("Case And Whitespace Insensitive", func(t *testing.T) {
		coords, ok := geo.CityToCoordinates("  Mumbai ")
		assert.True(t, ok)
		assert.InDelta(t, 19.0760, coords.Lat, 0.0001)
	})

	t.Run("Unknown City", func(t *testing.T) {
		_, ok := geo.CityToCoordinates("Atlantis")
		assert.False(t, ok)
	})
}

func TestDistance(t *testing.T) {
	t.Run("Zero For Same Point", func(t *testing.T) {
		assert.Zero(t, geo.Distance(18.5204, 73.8567, 18.5204, 73.8567))
	})

	t.Run("Pune To Mumbai", func(t *testing.T) {
		pune, _ := geo.CityToCoordinates("pune")
		mumbai, _ := geo.CityToCoordinates("mumbai")

		d := geo.Distance(pune.Lat, pune.Lon, mumbai.Lat, mumbai.Lon)

		// Great-circle distance between the two city centers.
		assert.InDelta(t, 120, d, 10)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := geo.Distance(18.5204, 73.8567, 28.7041, 77.1025)
		b := geo.Distance(28.7041, 77.1025, 18.5204, 73.8567)
		assert.InDelta(t, a, b, 0.0001)
	})
}

func TestSortByDistance(t *testing.T) {
	pune, _ := geo.CityToCoordinates("pune")

	jobs := []domain.Job{
		{Title: "Delhi Job", City: "Delhi"},
		{Title: "Mystery Job", City: "Unknownville"},
		{Title: "Mumbai Job", City: "Mumbai"},
		{Title: "Pune Job", City: "Pune"},
	}

	sorted := geo.SortByDistance(jobs, pune.Lat, pune.Lon)

	assert.Len(t, sorted, 4)
	assert.Equal(t, "Pune Job", sorted[0].Title)
	assert.Equal(t, "Mumbai Job", sorted[1].Title)
	assert.Equal(t, "Delhi Job", sorted[2].Title)

	// Unresolvable cities carry the sentinel and sort last.
	assert.Equal(t, "Mystery Job", sorted[3].Title)
	assert.Equal(t, float64(domain.UnknownDistance), *sorted[3].Distance)

	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, *sorted[i-1].Distance, *sorted[i].Distance)
	}

	// Input slice is left untouched.
	assert.Nil(t, jobs[0].Distance)
}

func TestFilterByRadius(t *testing.T) {
	pune, _ := geo.CityToCoordinates("pune")

	jobs := []domain.Job{
		{Title: "Pune Job", City: "Pune"},
		{Title: "Mumbai Job", City: "Mumbai"},
		{Title: "Delhi Job", City: "Delhi"},
		{Title: "Mystery Job", City: "Unknownville"},
	}

	t.Run("Keeps Jobs Within Radius", func(t *testing.T) {
		nearby := geo.FilterByRadius(jobs, pune.Lat, pune.Lon, 200)

		titles := make([]string, len(nearby))
		for i, job := range nearby {
			titles[i] = job.Title
		}
		assert.Equal(t, []string{"Pune Job", "Mumbai Job"}, titles)
	})

	t.Run("Excludes Unresolvable Cities", func(t *testing.T) {
		all := geo.FilterByRadius(jobs, pune.Lat, pune.Lon, 1e9)

		for _, job := range all {
			assert.NotEqual(t, "Mystery Job", job.Title)
		}
	})

	t.Run("Reuses Annotated Distances", func(t *testing.T) {
		annotated := geo.SortByDistance(jobs, pune.Lat, pune.Lon)

		nearby := geo.FilterByRadius(annotated, pune.Lat, pune.Lon, 200)

		assert.Len(t, nearby, 2)
		for _, job := range nearby {
			assert.NotNil(t, job.Distance)
			assert.LessOrEqual(t, *job.Distance, 200.0)
		}
	})
}
