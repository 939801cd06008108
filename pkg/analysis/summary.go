package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// MetricSummary is the distribution of one metric across a group of records.
type MetricSummary struct {
	Mean   float64 `groups:"basic"`
	Median float64 `groups:"basic"`
	P90    float64 `groups:"basic"`
	Min    float64 `groups:"basic"`
	Max    float64 `groups:"basic"`
}

// Summary aggregates every record sharing an origin/destination pair.
type Summary struct {
	OriginStopRef      string `groups:"basic"`
	DestinationStopRef string `groups:"basic"`

	Count int `groups:"basic"`

	TravelTime MetricSummary `groups:"basic"`
	Transfers  MetricSummary `groups:"basic"`
}

func summariseMetric(values []float64) MetricSummary {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	p90, _ := stats.Percentile(values, 90)
	minimum, _ := stats.Min(values)
	maximum, _ := stats.Max(values)

	return MetricSummary{
		Mean:   mean,
		Median: median,
		P90:    p90,
		Min:    minimum,
		Max:    maximum,
	}
}

// Summarise groups records by origin/destination pair and summarises travel
// time and transfer count per group. Group order follows first appearance.
func Summarise(records []*JourneyRecord) []Summary {
	type group struct {
		origin      string
		destination string

		travelTimes []float64
		transfers   []float64
	}

	var order []string
	groups := map[string]*group{}

	for _, record := range records {
		key := fmt.Sprintf("%s/%s", record.OriginStopRef, record.DestinationStopRef)

		g, ok := groups[key]
		if !ok {
			g = &group{
				origin:      record.OriginStopRef,
				destination: record.DestinationStopRef,
			}
			groups[key] = g
			order = append(order, key)
		}

		g.travelTimes = append(g.travelTimes, float64(record.TravelTime))
		g.transfers = append(g.transfers, float64(record.Transfers))
	}

	var summaries []Summary
	for _, key := range order {
		g := groups[key]

		summaries = append(summaries, Summary{
			OriginStopRef:      g.origin,
			DestinationStopRef: g.destination,

			Count: len(g.travelTimes),

			TravelTime: summariseMetric(g.travelTimes),
			Transfers:  summariseMetric(g.transfers),
		})
	}

	return summaries
}
