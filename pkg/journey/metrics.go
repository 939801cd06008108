package journey

// Derived metric accessors over a built journey. All of them require at least
// one leg to have been added and panic on an empty journey - callers must
// guarantee a non-empty Journey before querying it.

// StopPair is a from/to pair of stop identifiers.
type StopPair struct {
	From string `groups:"basic" json:"from"`
	To   string `groups:"basic" json:"to"`
}

// TripPair is a pair of consecutive trip identifiers across a transfer.
type TripPair struct {
	From string `groups:"basic" json:"from"`
	To   string `groups:"basic" json:"to"`
}

func (j *Journey) TravelTime() int64 {
	j.requireLegs()

	return j.ArrivalTime - j.DepartureTime
}

// Transfers is the number of boardings beyond the first.
func (j *Journey) Transfers() int {
	j.requireLegs()

	return max(j.Boardings-1, 0)
}

// AllStops is the departure stop of every leg in order, followed by the final
// arrival stop. Length is always len(Legs)+1.
func (j *Journey) AllStops() []string {
	j.requireLegs()

	var stops []string
	for _, leg := range j.Legs {
		stops = append(stops, leg.DepartureStop)
	}
	stops = append(stops, j.Legs[len(j.Legs)-1].ArrivalStop)

	return stops
}

// TransferStopPairs lists the stop-to-stop connections where the traveller
// changes vehicles. Walking legs never emit a pair themselves but do carry the
// previous arrival stop forward to the next vehicle leg.
func (j *Journey) TransferStopPairs() []StopPair {
	j.requireLegs()

	var pairs []StopPair

	previousArrivalStop := ""
	hasPreviousArrivalStop := false
	currentTripID := ""

	for _, leg := range j.Legs {
		if leg.TripID != "" && leg.TripID != currentTripID && hasPreviousArrivalStop {
			pairs = append(pairs, StopPair{
				From: previousArrivalStop,
				To:   leg.DepartureStop,
			})
		}

		previousArrivalStop = leg.ArrivalStop
		hasPreviousArrivalStop = true
		currentTripID = leg.TripID
	}

	return pairs
}

// TransferTripPairs lists, for each boarding beyond the first, the trip left
// behind and the trip boarded.
func (j *Journey) TransferTripPairs() []TripPair {
	j.requireLegs()

	var pairs []TripPair

	currentTripID := ""
	for _, leg := range j.Legs {
		if leg.TripID == "" {
			continue
		}

		if currentTripID != "" && leg.TripID != currentTripID {
			pairs = append(pairs, TripPair{
				From: currentTripID,
				To:   leg.TripID,
			})
		}

		currentTripID = leg.TripID
	}

	return pairs
}

// WaitingTimes is the gap between each leg's departure and the previous leg's
// arrival, in leg order. Length is always len(Legs)-1. Legs supplied out of
// chronological order produce negative gaps - garbage in, garbage out.
func (j *Journey) WaitingTimes() []int64 {
	j.requireLegs()

	var waits []int64
	for i := 1; i < len(j.Legs); i++ {
		waits = append(waits, j.Legs[i].DepartureTime-j.Legs[i-1].ArrivalTime)
	}

	return waits
}

func (j *Journey) TotalWaitingTime() int64 {
	var total int64
	for _, wait := range j.WaitingTimes() {
		total += wait
	}

	return total
}

// InVehicleTimes is the duration of every vehicle leg, walking legs excluded.
func (j *Journey) InVehicleTimes() []int64 {
	j.requireLegs()

	var durations []int64
	for _, leg := range j.Legs {
		if leg.TripID != "" {
			durations = append(durations, leg.Duration())
		}
	}

	return durations
}

func (j *Journey) TotalInVehicleTime() int64 {
	var total int64
	for _, duration := range j.InVehicleTimes() {
		total += duration
	}

	return total
}

// WalkingTimes is the time actually spent moving on each walking leg, the
// transfer wait excluded.
func (j *Journey) WalkingTimes() []int64 {
	j.requireLegs()

	var durations []int64
	for _, leg := range j.Legs {
		if leg.Walk {
			durations = append(durations, leg.Duration()-leg.WaitingTime)
		}
	}

	return durations
}

func (j *Journey) TotalWalkingTime() int64 {
	var total int64
	for _, duration := range j.WalkingTimes() {
		total += duration
	}

	return total
}

func (j *Journey) requireLegs() {
	if len(j.Legs) == 0 {
		panic("journey: metrics queried on a journey with no legs")
	}
}
