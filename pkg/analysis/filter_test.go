package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	record := NewRecord(sampleJourney(), RecordMeta{Feed: "test-feed"})

	filter, err := CompileFilter("transfers >= 1 && travel_time < 3600")
	require.NoError(t, err)

	matched, err := filter.Match(record)
	require.NoError(t, err)
	assert.True(t, matched)

	filter, err = CompileFilter(`feed == "another-feed"`)
	require.NoError(t, err)

	matched, err = filter.Match(record)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompileFilterRejectsInvalidExpression(t *testing.T) {
	_, err := CompileFilter("transfers >")
	assert.Error(t, err)
}

func TestExportCSVAppliesFilter(t *testing.T) {
	records := []*JourneyRecord{
		NewRecord(sampleJourney(), RecordMeta{Feed: "feed-a"}),
		NewRecord(sampleJourney(), RecordMeta{Feed: "feed-b"}),
	}

	filter, err := CompileFilter(`feed == "feed-a"`)
	require.NoError(t, err)

	var output bytes.Buffer
	require.NoError(t, ExportCSV(records, filter, &output))

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2, "header plus one matching record")
	assert.Contains(t, lines[0], "travel_time")
	assert.Contains(t, lines[1], "feed-a")
}

func TestSummariseGroupsByOriginDestination(t *testing.T) {
	a := NewRecord(sampleJourney(), RecordMeta{Feed: "feed-a"})
	b := NewRecord(sampleJourney(), RecordMeta{Feed: "feed-b"})

	other := NewRecord(sampleJourney(), RecordMeta{Feed: "feed-a"})
	other.OriginStopRef = "9"

	summaries := Summarise([]*JourneyRecord{a, b, other})
	require.Len(t, summaries, 2)

	assert.Equal(t, "1", summaries[0].OriginStopRef)
	assert.Equal(t, "4", summaries[0].DestinationStopRef)
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 1500, summaries[0].TravelTime.Mean, 1e-9)
	assert.InDelta(t, 1, summaries[0].Transfers.Max, 1e-9)

	assert.Equal(t, "9", summaries[1].OriginStopRef)
	assert.Equal(t, 1, summaries[1].Count)
}
