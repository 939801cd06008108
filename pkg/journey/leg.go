package journey

import "errors"

// Leg is one atomic travel segment of a journey, either riding a vehicle on a
// specific trip or walking between stops. Walking legs carry no trip identifier.
type Leg struct {
	DepartureStop string `groups:"basic" json:"departure_stop"`
	ArrivalStop   string `groups:"basic" json:"arrival_stop"`

	// Unix seconds
	DepartureTime int64 `groups:"basic" json:"departure_time"`
	ArrivalTime   int64 `groups:"basic" json:"arrival_time"`

	TripID string `groups:"basic" json:"trip_id,omitempty" bson:",omitempty"`
	Walk   bool   `groups:"basic" json:"walk,omitempty" bson:",omitempty"`

	// Time spent waiting before departing on this leg, in seconds. Only
	// meaningful on walking legs that represent a transfer wait.
	WaitingTime int64 `groups:"basic" json:"waiting_time,omitempty" bson:",omitempty"`
}

func (l Leg) Duration() int64 {
	return l.ArrivalTime - l.DepartureTime
}

// Validate checks the structural shape of a leg at transport boundaries.
// Chronology against neighbouring legs is deliberately not checked here -
// that contract belongs to whoever discovered the legs.
func (l Leg) Validate() error {
	if l.DepartureStop == "" || l.ArrivalStop == "" {
		return errors.New("leg must reference a departure and an arrival stop")
	}

	if l.Walk && l.TripID != "" {
		return errors.New("walking leg must not carry a trip id")
	}

	if !l.Walk && l.TripID == "" {
		return errors.New("vehicle leg must carry a trip id")
	}

	return nil
}
