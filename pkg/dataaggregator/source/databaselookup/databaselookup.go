package databaselookup

import (
	"context"
	"reflect"

	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/dataaggregator/query"
	"github.com/itinera/itinera/pkg/dataaggregator/source"
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/directory"
)

type Source struct {
}

func (s Source) GetName() string {
	return "Database Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(directory.Stop{}),
		reflect.TypeOf(directory.TripInfo{}),
		reflect.TypeOf(analysis.JourneyRecord{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Stop:
		return s.StopQuery(q)
	case query.Trip:
		return s.TripQuery(q)
	case query.JourneyRecord:
		return s.JourneyRecordQuery(q)
	}

	return nil, source.UnsupportedSourceError
}

func (s Source) StopQuery(q query.Stop) (*directory.Stop, error) {
	stopsCollection := database.GetCollection("stops")

	var stop *directory.Stop
	err := stopsCollection.FindOne(context.Background(), q.ToBson()).Decode(&stop)
	if err != nil {
		return nil, err
	}

	return stop, nil
}

func (s Source) TripQuery(q query.Trip) (*directory.TripInfo, error) {
	tripsCollection := database.GetCollection("trips")

	var trip *directory.TripInfo
	err := tripsCollection.FindOne(context.Background(), q.ToBson()).Decode(&trip)
	if err != nil {
		return nil, err
	}

	return trip, nil
}

func (s Source) JourneyRecordQuery(q query.JourneyRecord) (*analysis.JourneyRecord, error) {
	recordsCollection := database.GetCollection("journey_records")

	var record *analysis.JourneyRecord
	err := recordsCollection.FindOne(context.Background(), q.ToBson()).Decode(&record)
	if err != nil {
		return nil, err
	}

	return record, nil
}
