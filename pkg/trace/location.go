package trace

// Location is a GeoJSON style point, coordinates ordered longitude then
// latitude.
type Location struct {
	Type        string    `groups:"basic" json:"-"`
	Coordinates []float64 `groups:"basic" json:"coordinates"`
}

func NewLocation(lon float64, lat float64) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func (l Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l Location) Latitude() float64 {
	return l.Coordinates[1]
}
