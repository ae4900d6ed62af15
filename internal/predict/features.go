package predict

import (
	"time"

	"backend-routewise/internal/directions"
	"backend-routewise/internal/shared/geo"
)

// Variant tags a feature vector with the model family it was built for.
// A vector built for one variant must never reach the other's estimator.
type Variant string

const (
	// VariantMinimal: [equirectangular_distance_km, step_count]
	VariantMinimal Variant = "minimal"
	// VariantExtended: the 13-feature vector fed to the scaled regressor.
	VariantExtended Variant = "extended"
)

func (v Variant) Size() int {
	switch v {
	case VariantMinimal:
		return 2
	case VariantExtended:
		return 13
	default:
		return 0
	}
}

func (v Variant) Known() bool {
	return v == VariantMinimal || v == VariantExtended
}

const heavyTrafficRatio = 1.3

// Features is an ordered vector plus its variant tag. The ordering is fixed
// by what each model was trained on; reordering silently produces a
// wrong-but-plausible estimate, so the builders below are the only places
// vectors are assembled.
type Features struct {
	Variant     Variant
	Vector      []float64
	DataQuality []string
}

// BuildFeatures derives the feature vector for one route candidate.
// Deterministic: identical inputs yield an identical vector.
func BuildFeatures(origin, destination geo.Coordinate, candidate directions.RouteCandidate, departure time.Time, cityIndex int, variant Variant) Features {
	switch variant {
	case VariantMinimal:
		return Features{
			Variant: VariantMinimal,
			Vector: []float64{
				geo.EquirectangularKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng),
				float64(candidate.StepCount),
			},
		}
	case VariantExtended:
		return buildExtended(origin, destination, candidate, departure, cityIndex)
	default:
		return Features{Variant: variant}
	}
}

func buildExtended(origin, destination geo.Coordinate, candidate directions.RouteCandidate, departure time.Time, cityIndex int) Features {
	greatCircleKm := geo.HaversineKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	ratio, quality := roadToStraightRatio(candidate.DistanceMeters, greatCircleKm)

	f := Features{
		Variant: VariantExtended,
		Vector: []float64{
			origin.Lat,
			origin.Lng,
			destination.Lat,
			destination.Lng,
			candidate.TrafficRatio,
			float64(departure.Hour()),
			boolFeature(isPeakHour(departure.Hour())),
			boolFeature(isWeekend(departure.Weekday())),
			float64(candidate.DistanceMeters) / 1000,
			greatCircleKm,
			ratio,
			float64(cityIndex),
			boolFeature(candidate.TrafficRatio > heavyTrafficRatio),
		},
		DataQuality: quality,
	}
	return f
}

// roadToStraightRatio guards the coincident-endpoint case with a sentinel
// ratio of 1.0. A ratio below 1 means the reported road distance is shorter
// than the great-circle distance, which is physically impossible; it is
// surfaced as a data-quality note rather than dropped.
func roadToStraightRatio(distanceMeters int, greatCircleKm float64) (float64, []string) {
	if greatCircleKm == 0 {
		return 1.0, nil
	}
	ratio := float64(distanceMeters) / (greatCircleKm * 1000)
	if ratio < 1 {
		return ratio, []string{"road distance shorter than great-circle distance"}
	}
	return ratio, nil
}

// isPeakHour reports whether the local hour falls in the morning or evening
// congestion window, bounds inclusive on both ends.
func isPeakHour(hour int) bool {
	return (hour >= 8 && hour <= 11) || (hour >= 17 && hour <= 20)
}

// isWeekend uses a Monday-first week: Saturday=5, Sunday=6.
func isWeekend(day time.Weekday) bool {
	mondayFirst := (int(day) + 6) % 7
	return mondayFirst >= 5
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
