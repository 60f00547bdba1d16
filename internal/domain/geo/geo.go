package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Coordinate is a latitude/longitude pair in degrees on a spherical Earth.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Fix is a single reported user location sample.
// Heading is the true heading in degrees when the platform supplies one.
type Fix struct {
	Coordinate
	Heading *float64
}

// NewFix builds a fix without heading.
func NewFix(lat, lon float64) Fix {
	return Fix{Coordinate: Coordinate{Lat: lat, Lon: lon}}
}

// Valid reports whether the coordinate is finite and within range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return ValidateCoordinates(c.Lat, c.Lon)
}

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a slightly above 1 for near-antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceMeters returns the great-circle distance between a and b.
func DistanceMeters(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// InitialBearingDegrees returns the forward azimuth from -> to in [0, 360).
// The bearing is undefined for coincident points; 0 (north) is returned then,
// and for any non-finite input.
func InitialBearingDegrees(from, to Coordinate) float64 {
	if from == to {
		return 0
	}
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLon := toRadians(to.Lon - from.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	if x == 0 && y == 0 {
		return 0
	}
	b := wrap360(toDegrees(math.Atan2(y, x)))
	if math.IsNaN(b) {
		return 0
	}
	return b
}

// DestinationPoint projects origin along bearingDeg for distanceM meters.
// The returned longitude is normalised to [-180, 180).
func DestinationPoint(origin Coordinate, bearingDeg, distanceM float64) Coordinate {
	lat := toRadians(origin.Lat)
	lon := toRadians(origin.Lon)
	brng := toRadians(bearingDeg)
	delta := distanceM / EarthRadiusMeters

	newLat := math.Asin(math.Sin(lat)*math.Cos(delta) +
		math.Cos(lat)*math.Sin(delta)*math.Cos(brng))
	newLon := lon + math.Atan2(
		math.Sin(brng)*math.Sin(delta)*math.Cos(lat),
		math.Cos(delta)-math.Sin(lat)*math.Sin(newLat),
	)

	return Coordinate{
		Lat: toDegrees(newLat),
		Lon: wrap180(toDegrees(newLon)),
	}
}

var cardinals = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Cardinal maps a bearing to one of eight compass points.
func Cardinal(bearingDeg float64) string {
	if math.IsNaN(bearingDeg) || math.IsInf(bearingDeg, 0) {
		return cardinals[0]
	}
	idx := int(math.Floor(wrap360(bearingDeg+22.5)/45)) % len(cardinals)
	return cardinals[idx]
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

func wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func wrap180(deg float64) float64 {
	return wrap360(deg+180) - 180
}
