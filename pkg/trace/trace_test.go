package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory struct {
	stops map[string]Location
	trips map[string]RouteType
}

func (d *staticDirectory) LocateStop(_ context.Context, stopID string) (Location, error) {
	location, ok := d.stops[stopID]
	if !ok {
		return Location{}, errors.New("unknown stop " + stopID)
	}
	return location, nil
}

func (d *staticDirectory) ResolveTrip(_ context.Context, tripID string) (RouteType, error) {
	routeType, ok := d.trips[tripID]
	if !ok {
		return RouteTypeUnknown, errors.New("unknown trip " + tripID)
	}
	return routeType, nil
}

func testDirectory() *staticDirectory {
	return &staticDirectory{
		stops: map[string]Location{
			"1": NewLocation(0.0, 50.0),
			"2": NewLocation(1.0, 51.0),
			"3": NewLocation(2.0, 51.0),
		},
		trips: map[string]RouteType{
			"T1": RouteTypeRail,
			"T2": RouteTypeBus,
		},
	}
}

func testJourney() *journey.Journey {
	return journey.NewJourney(
		journey.Leg{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 100, TripID: "T1"},
		journey.Leg{DepartureStop: "2", ArrivalStop: "3", DepartureTime: 150, ArrivalTime: 250, TripID: "T2"},
	)
}

func TestBuildPathPreservesLegOrder(t *testing.T) {
	directory := testDirectory()

	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)
	require.Len(t, path, 2)

	assert.Equal(t, RouteTypeRail, path[0].RouteType)
	assert.Equal(t, "1", path[0].FromStop)
	assert.Equal(t, "2", path[0].ToStop)
	assert.Equal(t, NewLocation(0.0, 50.0), path[0].From)

	assert.Equal(t, RouteTypeBus, path[1].RouteType)
	assert.Equal(t, int64(150), path[1].DepartureTime)
}

func TestBuildPathWalkSkipsTripResolution(t *testing.T) {
	directory := testDirectory()

	walk := journey.NewJourney(
		journey.Leg{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 300, Walk: true},
	)

	path, err := BuildPath(context.Background(), directory, directory, walk)
	require.NoError(t, err)
	assert.Equal(t, RouteTypeWalk, path[0].RouteType)
}

func TestBuildPathUnknownStopFails(t *testing.T) {
	directory := testDirectory()

	broken := journey.NewJourney(
		journey.Leg{DepartureStop: "1", ArrivalStop: "99", DepartureTime: 0, ArrivalTime: 100, TripID: "T1"},
	)

	_, err := BuildPath(context.Background(), directory, directory, broken)
	assert.Error(t, err)
}

func TestPositionAtInterpolatesAlongSegment(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	location, ok := path.PositionAt(50)
	require.True(t, ok)
	assert.InDelta(t, 0.5, location.Longitude(), 1e-9)
	assert.InDelta(t, 50.5, location.Latitude(), 1e-9)
}

func TestPositionAtDwellsBetweenSegments(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	location, ok := path.PositionAt(120)
	require.True(t, ok)
	assert.Equal(t, NewLocation(1.0, 51.0), location, "waiting at the first segment's endpoint")
}

func TestPositionAtOutsideTravelWindow(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	_, ok := path.PositionAt(-10)
	assert.False(t, ok)

	_, ok = path.PositionAt(300)
	assert.False(t, ok)
}

func TestBoundsAddsTenPercentBuffer(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	bounds := path.Bounds()
	assert.InDelta(t, 49.9, bounds.MinLat, 1e-9)
	assert.InDelta(t, 51.1, bounds.MaxLat, 1e-9)
	assert.InDelta(t, -0.2, bounds.MinLon, 1e-9)
	assert.InDelta(t, 2.2, bounds.MaxLon, 1e-9)
}

func TestWindowClipsToOverlap(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	clipped := path.Window(50, 25)
	require.Len(t, clipped, 1)
	assert.Equal(t, int64(25), clipped[0].DepartureTime)
	assert.Equal(t, int64(50), clipped[0].ArrivalTime)
	assert.InDelta(t, 0.25, clipped[0].From.Longitude(), 1e-9)
	assert.InDelta(t, 0.5, clipped[0].To.Longitude(), 1e-9)
}

func TestWindowSpansSegments(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	clipped := path.Window(200, 150)
	require.Len(t, clipped, 2)
	assert.Equal(t, int64(50), clipped[0].DepartureTime)
	assert.Equal(t, int64(100), clipped[0].ArrivalTime)
	assert.Equal(t, int64(150), clipped[1].DepartureTime)
	assert.Equal(t, int64(200), clipped[1].ArrivalTime)
}

func TestSampleRangeSkipsOutOfWindowFrames(t *testing.T) {
	directory := testDirectory()
	path, err := BuildPath(context.Background(), directory, directory, testJourney())
	require.NoError(t, err)

	frames := SampleRange(path, -100, 300, 100)
	require.Len(t, frames, 3)
	assert.Equal(t, int64(0), frames[0].Time)
	assert.Equal(t, int64(100), frames[1].Time)
	assert.Equal(t, int64(200), frames[2].Time)
}
