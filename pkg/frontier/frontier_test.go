package frontier

import (
	"testing"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/stretchr/testify/assert"
)

func singleLegJourney(departure int64, arrival int64, tripID string) *journey.Journey {
	return journey.NewJourney(journey.Leg{
		DepartureStop: "1",
		ArrivalStop:   "2",
		DepartureTime: departure,
		ArrivalTime:   arrival,
		TripID:        tripID,
	})
}

func TestAddKeepsNonDominatedJourneys(t *testing.T) {
	f := NewFrontier(true, true)

	slow := singleLegJourney(0, 1000, "T1")
	assert.True(t, f.Add(slow))

	// departs later, arrives later - incomparable, both stay
	late := singleLegJourney(200, 1200, "T2")
	assert.True(t, f.Add(late))
	assert.Equal(t, 2, f.Len())
}

func TestAddRejectsDominatedCandidate(t *testing.T) {
	f := NewFrontier(true, true)

	assert.True(t, f.Add(singleLegJourney(100, 500, "T1")))

	// wider travel window, same boardings
	assert.False(t, f.Add(singleLegJourney(50, 600, "T2")))
	assert.Equal(t, 1, f.Len())
}

func TestAddEvictsDominatedMembers(t *testing.T) {
	f := NewFrontier(true, true)

	wide := singleLegJourney(0, 1000, "T1")
	wider := singleLegJourney(0, 1200, "T2")
	assert.True(t, f.Add(wider))
	assert.True(t, f.Add(wide))
	assert.Equal(t, 1, f.Len())

	narrow := singleLegJourney(100, 900, "T3")
	assert.True(t, f.Add(narrow))

	assert.Equal(t, []*journey.Journey{narrow}, f.Journeys())
}

func TestAddTieBreakKeepsExistingMember(t *testing.T) {
	f := NewFrontier(true, true)

	first := singleLegJourney(0, 600, "T1")
	duplicate := singleLegJourney(0, 600, "T2")

	assert.True(t, f.Add(first))
	assert.False(t, f.Add(duplicate), "an equal candidate loses to the member already held")
	assert.Equal(t, []*journey.Journey{first}, f.Journeys())
}

func TestFrontierWithBoardingsOnly(t *testing.T) {
	f := NewFrontier(false, true)

	twoBoardings := journey.NewJourney(
		journey.Leg{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 300, TripID: "T1"},
		journey.Leg{DepartureStop: "2", ArrivalStop: "3", DepartureTime: 340, ArrivalTime: 700, TripID: "T2"},
	)
	direct := singleLegJourney(0, 900, "T3")

	assert.True(t, f.Add(twoBoardings))

	// fewer boardings dominates regardless of the slower times
	assert.True(t, f.Add(direct))
	assert.Equal(t, []*journey.Journey{direct}, f.Journeys())
}

func TestJourneysSnapshotIsIndependent(t *testing.T) {
	f := NewFrontier(true, true)
	f.Add(singleLegJourney(0, 1000, "T1"))

	snapshot := f.Journeys()
	f.Add(singleLegJourney(100, 900, "T2"))

	assert.Equal(t, 1, len(snapshot))
}
