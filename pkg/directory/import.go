package directory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/trace"
	"github.com/paulcager/osgridref"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type stopRecord struct {
	Identifier       string `csv:"identifier"`
	Name             string `csv:"name"`
	OtherIdentifiers string `csv:"other_identifiers"`

	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`

	// UK OS grid references, used when lat/lon are not given
	Easting  string `csv:"easting"`
	Northing string `csv:"northing"`
}

type tripRecord struct {
	Identifier  string `csv:"identifier"`
	RouteType   string `csv:"route_type"`
	ServiceName string `csv:"service_name"`
	OperatorRef string `csv:"operator_ref"`
}

func (record *stopRecord) location() (*trace.Location, error) {
	if record.Latitude != "" && record.Longitude != "" {
		lat, err := strconv.ParseFloat(record.Latitude, 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(record.Longitude, 64)
		if err != nil {
			return nil, err
		}

		location := trace.NewLocation(lon, lat)
		return &location, nil
	}

	if record.Easting != "" && record.Northing != "" {
		gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", record.Easting, record.Northing))
		if err != nil {
			return nil, err
		}

		lat, lon := gridRef.ToLatLon()

		location := trace.NewLocation(lon, lat)
		return &location, nil
	}

	return nil, nil
}

// ImportStops reads a stops CSV and upserts each row into the directory.
func ImportStops(reader io.Reader) error {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		return r
	})

	var records []*stopRecord
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return err
	}

	stopsCollection := database.GetCollection("stops")
	now := time.Now()

	imported := 0
	for _, record := range records {
		location, err := record.location()
		if err != nil {
			log.Error().Err(err).Str("identifier", record.Identifier).Msg("Failed to resolve stop location")
			continue
		}

		stop := Stop{
			PrimaryIdentifier:    record.Identifier,
			PrimaryName:          record.Name,
			ModificationDateTime: now,
			Location:             location,
		}

		if record.OtherIdentifiers != "" {
			stop.OtherIdentifiers = strings.Split(record.OtherIdentifiers, ";")
		}

		opts := options.Replace().SetUpsert(true)
		_, err = stopsCollection.ReplaceOne(context.Background(),
			bson.M{"primaryidentifier": stop.PrimaryIdentifier}, stop, opts)
		if err != nil {
			log.Error().Err(err).Str("identifier", stop.PrimaryIdentifier).Msg("Failed to upsert stop")
			continue
		}

		imported += 1
	}

	log.Info().Int("imported", imported).Int("total", len(records)).Msg("Stop import complete")

	return nil
}

// ImportTrips reads a trips CSV and upserts each row into the directory.
func ImportTrips(reader io.Reader) error {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		return r
	})

	var records []*tripRecord
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return err
	}

	tripsCollection := database.GetCollection("trips")
	now := time.Now()

	for _, record := range records {
		trip := TripInfo{
			PrimaryIdentifier:    record.Identifier,
			RouteType:            trace.RouteType(record.RouteType),
			ServiceName:          record.ServiceName,
			OperatorRef:          record.OperatorRef,
			ModificationDateTime: now,
		}

		if trip.RouteType == "" {
			trip.RouteType = trace.RouteTypeUnknown
		}

		opts := options.Replace().SetUpsert(true)
		_, err := tripsCollection.ReplaceOne(context.Background(),
			bson.M{"primaryidentifier": trip.PrimaryIdentifier}, trip, opts)
		if err != nil {
			log.Error().Err(err).Str("identifier", trip.PrimaryIdentifier).Msg("Failed to upsert trip")
		}
	}

	log.Info().Int("total", len(records)).Msg("Trip import complete")

	return nil
}
