package geo

import (
	"math"
	"sort"
	"strings"

	"pasar-kerja/internal/domain"
)

const earthRadiusKm = 6371

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// cityTable maps known city names to coordinates. Lookups are
// case-insensitive and trimmed; anything outside the table goes
// through the fallback geocoder instead.
var cityTable = map[string]Coordinates{
	"pune":      {18.5204, 73.8567},
	"mumbai":    {19.0760, 72.8777},
	"delhi":     {28.7041, 77.1025},
	"bangalore": {12.9716, 77.5946},
	"hyderabad": {17.3850, 78.4867},
	"chennai":   {13.0827, 80.2707},
	"kolkata":   {22.5726, 88.3639},
	"ahmedabad": {23.0225, 72.5714},
	"jaipur":    {26.9124, 75.7873},
	"surat":     {21.1702, 72.8311},
	"lucknow":   {26.8467, 80.9462},
	"nagpur":    {21.1458, 79.0882},
	"indore":    {22.7196, 75.8577},
	"bhopal":    {23.2599, 77.4126},
	"nashik":    {19.9975, 73.7898},
}

// CityToCoordinates resolves a city against the static table.
func CityToCoordinates(name string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	coords, ok := cityTable[key]
	return coords, ok
}

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SortByDistance annotates every job with its distance from the given
// point and sorts ascending. Jobs whose city cannot be resolved get
// domain.UnknownDistance so they land at the end. The sort is stable:
// equal distances keep their input order.
func SortByDistance(jobs []domain.Job, userLat, userLon float64) []domain.Job {
	annotated := make([]domain.Job, len(jobs))
	copy(annotated, jobs)

	for i := range annotated {
		d := float64(domain.UnknownDistance)
		if coords, ok := CityToCoordinates(annotated[i].City); ok {
			d = Distance(userLat, userLon, coords.Lat, coords.Lon)
		}
		annotated[i].Distance = &d
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		return *annotated[i].Distance < *annotated[j].Distance
	})

	return annotated
}

// FilterByRadius keeps jobs within radiusKm of the given point. Jobs
// with no resolvable distance are excluded.
func FilterByRadius(jobs []domain.Job, userLat, userLon, radiusKm float64) []domain.Job {
	filtered := make([]domain.Job, 0, len(jobs))

	for _, job := range jobs {
		d := job.Distance
		if d == nil {
			coords, ok := CityToCoordinates(job.City)
			if !ok {
				continue
			}
			dist := Distance(userLat, userLon, coords.Lat, coords.Lon)
			d = &dist
		}
		if *d >= domain.UnknownDistance {
			continue
		}
		if *d <= radiusKm {
			job.Distance = d
			filtered = append(filtered, job)
		}
	}

	return filtered
}
