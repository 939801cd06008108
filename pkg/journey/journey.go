package journey

// Journey is an ordered chain of legs making up one point-to-point trip.
// Legs are added in order of travel by whatever process discovered them;
// once the owner stops appending, a Journey is read-only and safe to share.
type Journey struct {
	Legs []Leg `groups:"detailed" json:"legs"`

	// Fixed at the first AddLeg, never changed afterwards
	DepartureTime int64 `groups:"basic" json:"departure_time"`
	// Always the most recently added leg's arrival
	ArrivalTime int64 `groups:"basic" json:"arrival_time"`

	Boardings int `groups:"basic" json:"boardings"`

	TripIDs map[string]bool `groups:"detailed" json:"trip_ids,omitempty" bson:",omitempty"`
}

func NewJourney(legs ...Leg) *Journey {
	journey := &Journey{
		TripIDs: map[string]bool{},
	}

	for _, leg := range legs {
		journey.AddLeg(leg)
	}

	return journey
}

// AddLeg appends the next leg of travel and updates the running totals. A
// boarding is counted whenever a leg carries a trip id different from the
// previous leg's (walking legs carry none, so the vehicle leg after a walk
// always boards).
func (j *Journey) AddLeg(leg Leg) {
	if len(j.Legs) == 0 {
		j.DepartureTime = leg.DepartureTime
	}
	j.ArrivalTime = leg.ArrivalTime

	if leg.TripID != "" {
		if len(j.Legs) == 0 || leg.TripID != j.Legs[len(j.Legs)-1].TripID {
			j.Boardings += 1
		}

		if j.TripIDs == nil {
			j.TripIDs = map[string]bool{}
		}
		j.TripIDs[leg.TripID] = true
	}

	j.Legs = append(j.Legs, leg)
}

// Dominates reports whether this journey is no worse than the other across
// every enabled criterion: with considerTime it must depart no earlier and
// arrive no later, with considerBoardings it must board no more often. With
// both flags off the result is vacuously true. Equal journeys dominate each
// other both ways, so frontier pruning must apply its own tie-break.
func (j *Journey) Dominates(other *Journey, considerTime bool, considerBoardings bool) bool {
	j.requireLegs()
	other.requireLegs()

	if considerTime {
		if j.DepartureTime < other.DepartureTime || j.ArrivalTime > other.ArrivalTime {
			return false
		}
	}

	if considerBoardings {
		if j.Boardings > other.Boardings {
			return false
		}
	}

	return true
}
