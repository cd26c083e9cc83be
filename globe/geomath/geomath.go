// Package geomath holds the great-circle distance used for scoring guesses.
package geomath

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// EarthRadiusMeters is the radius of the earth in meters (in a spherical earth model).
const EarthRadiusMeters = 6371e3

// DistanceMeters returns the haversine great-circle distance between two
// lat/lon pairs given in degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Length denotes a length on Earth in meters.
type Length float64

// Distance is DistanceMeters as a Length.
func Distance(lat1, lon1, lat2, lon2 float64) Length {
	return Length(DistanceMeters(lat1, lon1, lat2, lon2))
}

// EarthDistance converts an angle on the unit sphere to a distance on earth.
func EarthDistance(angle s1.Angle) Length {
	return Length(angle.Radians() * EarthRadiusMeters)
}

// Angle converts l back to an angle on the unit sphere.
func (l Length) Angle() s1.Angle {
	return s1.Angle(float64(l) / EarthRadiusMeters)
}

// String converts the length to human readable units.
func (l Length) String() string {
	switch {
	case l >= 1000:
		return fmt.Sprintf("%.1f km", l/1000)
	case l < 1:
		return fmt.Sprintf("%.0f cm", l*100)
	default:
		return fmt.Sprintf("%.0f m", l)
	}
}
