package analysis

import (
	"io"

	"github.com/gocarina/gocsv"
)

type exportRow struct {
	PrimaryIdentifier  string `csv:"primary_identifier"`
	Feed               string `csv:"feed"`
	OriginStopRef      string `csv:"origin"`
	DestinationStopRef string `csv:"destination"`

	DepartureTime int64 `csv:"departure_time"`
	ArrivalTime   int64 `csv:"arrival_time"`

	Legs      int `csv:"legs"`
	Boardings int `csv:"boardings"`
	Transfers int `csv:"transfers"`

	TravelTime         int64 `csv:"travel_time"`
	TotalWaitingTime   int64 `csv:"total_waiting_time"`
	TotalInVehicleTime int64 `csv:"total_invehicle_time"`
	TotalWalkingTime   int64 `csv:"total_walking_time"`
}

// ExportCSV writes records matching the filter as CSV. A nil filter exports
// everything.
func ExportCSV(records []*JourneyRecord, filter *Filter, writer io.Writer) error {
	var rows []exportRow

	for _, record := range records {
		if filter != nil {
			matched, err := filter.Match(record)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
		}

		rows = append(rows, exportRow{
			PrimaryIdentifier:  record.PrimaryIdentifier,
			Feed:               record.Feed,
			OriginStopRef:      record.OriginStopRef,
			DestinationStopRef: record.DestinationStopRef,

			DepartureTime: record.DepartureTime,
			ArrivalTime:   record.ArrivalTime,

			Legs:      len(record.Legs),
			Boardings: record.Boardings,
			Transfers: record.Transfers,

			TravelTime:         record.TravelTime,
			TotalWaitingTime:   record.TotalWaitingTime,
			TotalInVehicleTime: record.TotalInVehicleTime,
			TotalWalkingTime:   record.TotalWalkingTime,
		})
	}

	return gocsv.Marshal(rows, writer)
}
