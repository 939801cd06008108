package ingest

import (
	"testing"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admitIntoSnapshot(t *testing.T, snapshot *FrontierSnapshot, recordID string, j *journey.Journey) bool {
	t.Helper()

	currentFrontier, memberLookup := snapshot.Rebuild(true, true)

	if !currentFrontier.Add(j) {
		return false
	}

	memberLookup[j] = FrontierMember{
		RecordID: recordID,

		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
		Boardings:     j.Boardings,

		Legs: j.Legs,
	}

	snapshot.Members = nil
	for _, member := range currentFrontier.Journeys() {
		snapshot.Members = append(snapshot.Members, memberLookup[member])
	}

	return true
}

func TestSerializedAdmissionSeesEarlierAdmission(t *testing.T) {
	snapshot := &FrontierSnapshot{
		Feed:               "metro-search",
		OriginStopRef:      "1",
		DestinationStopRef: "2",
	}

	narrow := journey.NewJourney(journey.Leg{
		DepartureStop: "1", ArrivalStop: "2",
		DepartureTime: 100, ArrivalTime: 500,
		TripID: "T1",
	})
	wide := journey.NewJourney(journey.Leg{
		DepartureStop: "1", ArrivalStop: "2",
		DepartureTime: 50, ArrivalTime: 600,
		TripID: "T2",
	})

	assert.True(t, admitIntoSnapshot(t, snapshot, "narrow", narrow))

	// judged one at a time against the updated snapshot, the wider journey
	// is rejected instead of clobbering the snapshot with itself
	assert.False(t, admitIntoSnapshot(t, snapshot, "wide", wide))

	require.Len(t, snapshot.Members, 1)
	assert.Equal(t, "narrow", snapshot.Members[0].RecordID)
}

func TestFrontierLockKeyPerStopPair(t *testing.T) {
	a := frontierLockKey("metro-search", "1", "2")
	b := frontierLockKey("metro-search", "1", "3")
	c := frontierLockKey("rail-search", "1", "2")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, frontierLockKey("metro-search", "1", "2"))

	assert.NotEqual(t, a, frontierCacheKey("metro-search", "1", "2"),
		"lock and snapshot must live under different keys")
}
