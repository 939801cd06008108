package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopRecordLocationFromLatLon(t *testing.T) {
	record := stopRecord{
		Identifier: "STOP:1",
		Latitude:   "51.5074",
		Longitude:  "-0.1278",
	}

	location, err := record.location()
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.InDelta(t, 51.5074, location.Latitude(), 0.0001)
	assert.InDelta(t, -0.1278, location.Longitude(), 0.0001)
}

func TestStopRecordLocationFromGridRef(t *testing.T) {
	// Easting/northing for central London, roughly Trafalgar Square
	record := stopRecord{
		Identifier: "STOP:2",
		Easting:    "530000",
		Northing:   "180000",
	}

	location, err := record.location()
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.InDelta(t, 51.5, location.Latitude(), 0.1)
	assert.InDelta(t, -0.13, location.Longitude(), 0.1)
}

func TestStopRecordLocationPrefersLatLon(t *testing.T) {
	record := stopRecord{
		Identifier: "STOP:3",
		Latitude:   "55.9533",
		Longitude:  "-3.1883",
		Easting:    "530000",
		Northing:   "180000",
	}

	location, err := record.location()
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.InDelta(t, 55.9533, location.Latitude(), 0.0001)
}

func TestStopRecordLocationMissing(t *testing.T) {
	record := stopRecord{Identifier: "STOP:4"}

	location, err := record.location()
	require.NoError(t, err)
	assert.Nil(t, location)
}

func TestStopRecordLocationInvalidLatitude(t *testing.T) {
	record := stopRecord{
		Identifier: "STOP:5",
		Latitude:   "not-a-number",
		Longitude:  "-0.1278",
	}

	_, err := record.location()
	assert.Error(t, err)
}
