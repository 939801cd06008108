package analysis

import (
	"testing"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJourney() *journey.Journey {
	return journey.NewJourney(
		journey.Leg{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 600, TripID: "T1"},
		journey.Leg{DepartureStop: "2", ArrivalStop: "3", DepartureTime: 620, ArrivalTime: 800, Walk: true, WaitingTime: 20},
		journey.Leg{DepartureStop: "3", ArrivalStop: "4", DepartureTime: 900, ArrivalTime: 1500, TripID: "T2"},
	)
}

func TestNewRecordSnapshotsAllMetrics(t *testing.T) {
	record := NewRecord(sampleJourney(), RecordMeta{Feed: "test-feed"})

	assert.Equal(t, "test-feed", record.Feed)
	assert.Equal(t, "1", record.OriginStopRef)
	assert.Equal(t, "4", record.DestinationStopRef)

	assert.Equal(t, int64(0), record.DepartureTime)
	assert.Equal(t, int64(1500), record.ArrivalTime)
	assert.Equal(t, int64(1500), record.TravelTime)

	assert.Equal(t, 2, record.Boardings)
	assert.Equal(t, 1, record.Transfers)

	assert.Equal(t, []int64{20, 100}, record.WaitingTimes)
	assert.Equal(t, int64(120), record.TotalWaitingTime)
	assert.Equal(t, int64(1200), record.TotalInVehicleTime)
	assert.Equal(t, int64(160), record.TotalWalkingTime)

	assert.Equal(t, []string{"1", "2", "3", "4"}, record.Stops)
	assert.Equal(t, []journey.StopPair{{From: "3", To: "3"}}, record.TransferStopPairs)
	assert.Equal(t, []journey.TripPair{{From: "T1", To: "T2"}}, record.TransferTripPairs)

	require.Len(t, record.Legs, 3)
}

func TestFunctionalHashIsStable(t *testing.T) {
	a := NewRecord(sampleJourney(), RecordMeta{Feed: "test-feed"})
	b := NewRecord(sampleJourney(), RecordMeta{Feed: "test-feed"})

	assert.Equal(t, a.PrimaryIdentifier, b.PrimaryIdentifier)
	assert.NotEmpty(t, a.PrimaryIdentifier)
}

func TestFunctionalHashDiffersAcrossFeeds(t *testing.T) {
	a := NewRecord(sampleJourney(), RecordMeta{Feed: "feed-a"})
	b := NewRecord(sampleJourney(), RecordMeta{Feed: "feed-b"})

	assert.NotEqual(t, a.PrimaryIdentifier, b.PrimaryIdentifier)
}

func TestRecordLegsAreDeepCopies(t *testing.T) {
	j := sampleJourney()
	record := NewRecord(j, RecordMeta{Feed: "test-feed"})

	j.Legs[0].DepartureStop = "mutated"

	assert.Equal(t, "1", record.Legs[0].DepartureStop)
}

func TestRecordLegsMatchJourneyLegs(t *testing.T) {
	j := sampleJourney()
	record := NewRecord(j, RecordMeta{Feed: "test-feed"})

	// the snapshot must always carry every leg, whatever copy path was taken
	assert.Equal(t, j.Legs, record.Legs)
}

func TestRecordJourneyRoundTrip(t *testing.T) {
	record := NewRecord(sampleJourney(), RecordMeta{Feed: "test-feed"})

	rebuilt := record.Journey()

	assert.Equal(t, record.DepartureTime, rebuilt.DepartureTime)
	assert.Equal(t, record.ArrivalTime, rebuilt.ArrivalTime)
	assert.Equal(t, record.Boardings, rebuilt.Boardings)
	assert.Equal(t, record.TravelTime, rebuilt.TravelTime())
}
