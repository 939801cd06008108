package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Three-leg ride with one change of vehicle at stop 3
func threeLegJourney() *Journey {
	return NewJourney(
		vehicleLeg("1", "2", 0, 600, "T1"),
		vehicleLeg("2", "3", 600, 1200, "T1"),
		vehicleLeg("3", "4", 1260, 1800, "T2"),
	)
}

func TestThreeLegJourneyMetrics(t *testing.T) {
	journey := threeLegJourney()

	assert.Equal(t, 2, journey.Boardings)
	assert.Equal(t, 1, journey.Transfers())
	assert.Equal(t, int64(1800), journey.TravelTime())
	assert.Equal(t, []int64{0, 60}, journey.WaitingTimes())
	assert.Equal(t, int64(60), journey.TotalWaitingTime())
	assert.Equal(t, int64(1740), journey.TotalInVehicleTime())
	assert.Equal(t, []string{"1", "2", "3", "4"}, journey.AllStops())
	assert.Equal(t, []StopPair{{From: "3", To: "3"}}, journey.TransferStopPairs())
	assert.Equal(t, []TripPair{{From: "T1", To: "T2"}}, journey.TransferTripPairs())
}

func TestTransfersIsBoardingsMinusOneFlooredAtZero(t *testing.T) {
	walkOnly := NewJourney(walkLeg("1", "2", 0, 300, 0))
	assert.Equal(t, 0, walkOnly.Boardings)
	assert.Equal(t, 0, walkOnly.Transfers())

	single := NewJourney(vehicleLeg("1", "2", 0, 300, "T1"))
	assert.Equal(t, 0, single.Transfers())

	assert.Equal(t, 1, threeLegJourney().Transfers())
}

func TestTransferStopPairsAcrossWalk(t *testing.T) {
	journey := NewJourney(
		vehicleLeg("1", "2", 0, 600, "T1"),
		walkLeg("2", "3", 620, 800, 20),
		vehicleLeg("3", "4", 900, 1500, "T2"),
	)

	// the walk carries the previous arrival stop forward but emits no pair
	assert.Equal(t, []StopPair{{From: "3", To: "3"}}, journey.TransferStopPairs())
}

func TestTransferStopPairsFirstBoardingEmitsNothing(t *testing.T) {
	journey := NewJourney(vehicleLeg("1", "2", 0, 600, "T1"))

	assert.Empty(t, journey.TransferStopPairs())
}

func TestWaitingTimesZeroStart(t *testing.T) {
	// a journey departing at the epoch still reports the full gap list
	journey := NewJourney(
		vehicleLeg("1", "2", 0, 0, "T1"),
		vehicleLeg("2", "3", 30, 120, "T2"),
	)

	assert.Equal(t, []int64{30}, journey.WaitingTimes())
	assert.Equal(t, int64(30), journey.TotalWaitingTime())
}

func TestWaitingTimesNegativeWhenOutOfOrder(t *testing.T) {
	// out-of-order legs are not defended against; the garbage shows up here
	journey := NewJourney(
		vehicleLeg("1", "2", 100, 600, "T1"),
		vehicleLeg("2", "3", 500, 900, "T2"),
	)

	assert.Equal(t, []int64{-100}, journey.WaitingTimes())
}

func TestWalkingTimesExcludeTransferWait(t *testing.T) {
	journey := NewJourney(
		vehicleLeg("1", "2", 0, 600, "T1"),
		walkLeg("2", "3", 600, 900, 120),
		vehicleLeg("3", "4", 900, 1500, "T2"),
	)

	assert.Equal(t, []int64{180}, journey.WalkingTimes())
	assert.Equal(t, int64(180), journey.TotalWalkingTime())
	assert.Equal(t, []int64{600, 600}, journey.InVehicleTimes())
	assert.Equal(t, int64(1200), journey.TotalInVehicleTime())
}
