package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// EquirectangularKm returns the flat-plane distance approximation
// sqrt(dLat^2 + dLng^2) * 111 km. It is only suitable as a model input
// for estimators trained on the same formula; it is not interchangeable
// with HaversineKm.
func EquirectangularKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat1 - lat2
	dLng := lng1 - lng2
	return math.Sqrt(dLat*dLat+dLng*dLng) * 111
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DecodePolyline decodes a Google-encoded polyline string into an ordered
// coordinate sequence. Returns nil on a malformed input rather than a
// partial path.
func DecodePolyline(encoded string) []Coordinate {
	var coords []Coordinate
	var lat, lng int64

	i := 0
	for i < len(encoded) {
		dLat, next, ok := decodeChunk(encoded, i)
		if !ok {
			return nil
		}
		lat += dLat
		i = next

		dLng, next, ok := decodeChunk(encoded, i)
		if !ok {
			return nil
		}
		lng += dLng
		i = next

		coords = append(coords, Coordinate{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}
	return coords
}

func decodeChunk(encoded string, start int) (int64, int, bool) {
	var result int64
	var shift uint

	i := start
	for {
		if i >= len(encoded) {
			return 0, i, false
		}
		b := int64(encoded[i]) - 63
		if b < 0 {
			return 0, i, false
		}
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), i, true
	}
	return result >> 1, i, true
}
