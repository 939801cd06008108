package trace

// Bounds is the lat/lon box containing a path.
type Bounds struct {
	MinLat float64 `groups:"basic" json:"min_lat"`
	MaxLat float64 `groups:"basic" json:"max_lat"`
	MinLon float64 `groups:"basic" json:"min_lon"`
	MaxLon float64 `groups:"basic" json:"max_lon"`
}

// Frame is the sampled position of the traveller at one point in time.
type Frame struct {
	Time     int64    `groups:"basic" json:"time"`
	Location Location `groups:"basic" json:"location"`
}

// Bounds computes the spatial bounds of every segment endpoint, padded by 10%
// of the span on each side.
func (p Path) Bounds() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}

	bounds := Bounds{
		MinLat: p[0].From.Latitude(),
		MaxLat: p[0].From.Latitude(),
		MinLon: p[0].From.Longitude(),
		MaxLon: p[0].From.Longitude(),
	}

	for _, segment := range p {
		for _, location := range []Location{segment.From, segment.To} {
			bounds.MinLat = min(bounds.MinLat, location.Latitude())
			bounds.MaxLat = max(bounds.MaxLat, location.Latitude())
			bounds.MinLon = min(bounds.MinLon, location.Longitude())
			bounds.MaxLon = max(bounds.MaxLon, location.Longitude())
		}
	}

	latBuffer := (bounds.MaxLat - bounds.MinLat) * 0.1
	lonBuffer := (bounds.MaxLon - bounds.MinLon) * 0.1

	bounds.MinLat -= latBuffer
	bounds.MaxLat += latBuffer
	bounds.MinLon -= lonBuffer
	bounds.MaxLon += lonBuffer

	return bounds
}

// PositionAt interpolates the traveller's position at unix second t. During a
// segment the position moves linearly between the endpoints; between segments
// the traveller dwells at the previous segment's endpoint. Reports false
// before the path departs or after it arrives.
func (p Path) PositionAt(t int64) (Location, bool) {
	if len(p) == 0 || t < p[0].DepartureTime || t > p[len(p)-1].ArrivalTime {
		return Location{}, false
	}

	for index, segment := range p {
		if t < segment.DepartureTime {
			// dwelling at the previous segment's endpoint
			return p[index-1].To, true
		}

		if t <= segment.ArrivalTime {
			return segment.interpolate(segment.fraction(t)), true
		}
	}

	return p[len(p)-1].To, true
}

// Window returns the portions of the path travelled during [t-tail, t], each
// clipped to the overlap with its segment. This is the tail a time-lapse
// renderer draws behind the current position.
func (p Path) Window(t int64, tail int64) []Segment {
	var clipped []Segment

	tailTime := t - tail

	for _, segment := range p {
		if tailTime > segment.ArrivalTime || t < segment.DepartureTime {
			continue
		}

		overlapStart := max(segment.DepartureTime, min(segment.ArrivalTime, tailTime))
		overlapEnd := max(segment.DepartureTime, min(segment.ArrivalTime, t))

		sub := segment
		sub.DepartureTime = overlapStart
		sub.ArrivalTime = overlapEnd
		sub.From = segment.interpolate(segment.fraction(overlapStart))
		sub.To = segment.interpolate(segment.fraction(overlapEnd))

		clipped = append(clipped, sub)
	}

	return clipped
}

// SampleRange samples positions along the path every step seconds across
// [from, to], skipping instants where the traveller is not en route.
func SampleRange(p Path, from int64, to int64, step int64) []Frame {
	if step <= 0 {
		step = 1
	}

	var frames []Frame
	for t := from; t <= to; t += step {
		location, ok := p.PositionAt(t)
		if !ok {
			continue
		}

		frames = append(frames, Frame{
			Time:     t,
			Location: location,
		})
	}

	return frames
}

func (s Segment) fraction(t int64) float64 {
	duration := s.ArrivalTime - s.DepartureTime
	if duration <= 0 {
		return 1
	}

	return float64(t-s.DepartureTime) / float64(duration)
}

func (s Segment) interpolate(fraction float64) Location {
	lon := s.From.Longitude() + fraction*(s.To.Longitude()-s.From.Longitude())
	lat := s.From.Latitude() + fraction*(s.To.Latitude()-s.From.Latitude())

	return NewLocation(lon, lat)
}
