// Package mapdata holds the game's data records and loads them from GeoJSON.
package mapdata

// Point is a labelled place of interest.
type Point struct {
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Label     string  `yaml:"label" json:"label"`
	URL       string  `yaml:"url" json:"url"`
}

// Coord returns the point as a lon/lat pair.
func (p Point) Coord() [2]float64 { return [2]float64{p.Longitude, p.Latitude} }

// Round is the target of one round of the game. Ongoing goes from true to
// false once, when a submission is accepted.
type Round struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Ongoing   bool    `yaml:"ongoing"`
	Number    int     `yaml:"number"`
	Water     bool    `yaml:"water"`
}

// Point returns the round target as an unlabelled point.
func (r Round) Point() Point {
	return Point{Longitude: r.Longitude, Latitude: r.Latitude}
}

// Submission is a guess for a round.
type Submission struct {
	Round     int     `json:"round"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Coordinates returns the lon/lat pairs of points in order.
func Coordinates(points []Point) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = p.Coord()
	}
	return out
}

// RoundsFromPoints numbers one ongoing round per point, in order.
func RoundsFromPoints(points []Point) []Round {
	out := make([]Round, len(points))
	for i, p := range points {
		out[i] = Round{Longitude: p.Longitude, Latitude: p.Latitude, Ongoing: true, Number: i + 1}
	}
	return out
}
