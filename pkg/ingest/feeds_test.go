package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedsYaml = `identifier: metro-search
name: Metro journey search
queue: metro-search-queue
dominance:
  consider_time: true
  consider_boardings: true
retention: P7D
frontier_ttl: PT30M
---
identifier: rail-search
name: Rail journey search
queue: rail-search-queue
dominance:
  consider_time: true
  consider_boardings: false
`

func writeFeedsFile(t *testing.T) string {
	t.Helper()

	directory := t.TempDir()
	err := os.WriteFile(filepath.Join(directory, "feeds.yaml"), []byte(feedsYaml), 0644)
	require.NoError(t, err)

	return directory
}

func TestLoadFeedsMultiDocument(t *testing.T) {
	feeds, err := LoadFeeds(writeFeedsFile(t))
	require.NoError(t, err)
	require.Len(t, feeds, 2)

	assert.Equal(t, "metro-search", feeds[0].Identifier)
	assert.Equal(t, "metro-search-queue", feeds[0].Queue)
	assert.True(t, feeds[0].Dominance.ConsiderTime)
	assert.True(t, feeds[0].Dominance.ConsiderBoardings)

	assert.Equal(t, "rail-search", feeds[1].Identifier)
	assert.False(t, feeds[1].Dominance.ConsiderBoardings)
}

func TestFeedDurations(t *testing.T) {
	feeds, err := LoadFeeds(writeFeedsFile(t))
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, feeds[0].RetentionDuration())
	assert.Equal(t, 30*time.Minute, feeds[0].FrontierTTLDuration())

	// unset durations fall back to defaults
	assert.Equal(t, defaultRetention, feeds[1].RetentionDuration())
	assert.Equal(t, defaultFrontierTTL, feeds[1].FrontierTTLDuration())
}

func TestGetFeed(t *testing.T) {
	feeds, err := LoadFeeds(writeFeedsFile(t))
	require.NoError(t, err)

	feed, err := GetFeed(feeds, "rail-search")
	require.NoError(t, err)
	assert.Equal(t, "rail-search-queue", feed.Queue)

	_, err = GetFeed(feeds, "missing")
	assert.Error(t, err)
}

func TestSubmissionValidate(t *testing.T) {
	valid := Submission{
		Feed: "metro-search",
		Legs: []journey.Leg{
			{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 600, TripID: "T1"},
		},
	}
	assert.NoError(t, valid.Validate())

	empty := Submission{Feed: "metro-search"}
	assert.Error(t, empty.Validate(), "a submission without legs is rejected")

	badLeg := Submission{
		Feed: "metro-search",
		Legs: []journey.Leg{
			{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 600},
		},
	}
	assert.Error(t, badLeg.Validate(), "a vehicle leg without a trip id is rejected")
}

func TestFrontierSnapshotRebuild(t *testing.T) {
	snapshot := &FrontierSnapshot{
		Feed:               "metro-search",
		OriginStopRef:      "1",
		DestinationStopRef: "2",
		Members: []FrontierMember{
			{
				RecordID:      "a",
				DepartureTime: 0,
				ArrivalTime:   1000,
				Boardings:     1,
				Legs: []journey.Leg{
					{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 0, ArrivalTime: 1000, TripID: "T1"},
				},
			},
			{
				RecordID:      "b",
				DepartureTime: 200,
				ArrivalTime:   900,
				Boardings:     1,
				Legs: []journey.Leg{
					{DepartureStop: "1", ArrivalStop: "2", DepartureTime: 200, ArrivalTime: 900, TripID: "T2"},
				},
			},
		},
	}

	rebuilt, memberLookup := snapshot.Rebuild(true, true)

	// member b dominates member a, so only b survives the rebuild
	require.Equal(t, 1, rebuilt.Len())
	assert.Equal(t, "b", memberLookup[rebuilt.Journeys()[0]].RecordID)
}
