package analysis

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// JourneyRecord is the persisted snapshot of one completed journey and every
// metric derived from it. Records are built only through the journey read
// accessors - nothing recomputes a metric after the fact.
type JourneyRecord struct {
	PrimaryIdentifier string `groups:"basic"`

	Feed string `groups:"basic"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	OriginStopRef      string `groups:"basic"`
	DestinationStopRef string `groups:"basic"`

	DepartureTime int64 `groups:"basic"`
	ArrivalTime   int64 `groups:"basic"`

	// Duplicated as time.Time for Mongo range queries
	DepartureDateTime time.Time `groups:"detailed"`
	ArrivalDateTime   time.Time `groups:"detailed"`

	Legs []journey.Leg `groups:"detailed"`

	Boardings  int   `groups:"basic"`
	Transfers  int   `groups:"basic"`
	TravelTime int64 `groups:"basic"`

	TotalWaitingTime   int64 `groups:"basic"`
	TotalInVehicleTime int64 `groups:"basic"`
	TotalWalkingTime   int64 `groups:"basic"`

	WaitingTimes   []int64 `groups:"detailed" json:",omitempty" bson:",omitempty"`
	InVehicleTimes []int64 `groups:"detailed" json:",omitempty" bson:",omitempty"`
	WalkingTimes   []int64 `groups:"detailed" json:",omitempty" bson:",omitempty"`

	Stops             []string           `groups:"detailed" json:",omitempty" bson:",omitempty"`
	TransferStopPairs []journey.StopPair `groups:"detailed" json:",omitempty" bson:",omitempty"`
	TransferTripPairs []journey.TripPair `groups:"detailed" json:",omitempty" bson:",omitempty"`

	BundleSourceFile string `groups:"internal" json:",omitempty" bson:",omitempty"`
}

type RecordMeta struct {
	Feed        string
	RequestedAt time.Time
}

// NewRecord snapshots a built journey. The journey must have at least one
// leg.
func NewRecord(j *journey.Journey, meta RecordMeta) *JourneyRecord {
	stops := j.AllStops()
	now := time.Now()

	record := &JourneyRecord{
		Feed: meta.Feed,

		CreationDateTime:     now,
		ModificationDateTime: now,

		OriginStopRef:      stops[0],
		DestinationStopRef: stops[len(stops)-1],

		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,

		DepartureDateTime: time.Unix(j.DepartureTime, 0).UTC(),
		ArrivalDateTime:   time.Unix(j.ArrivalTime, 0).UTC(),

		Boardings:  j.Boardings,
		Transfers:  j.Transfers(),
		TravelTime: j.TravelTime(),

		TotalWaitingTime:   j.TotalWaitingTime(),
		TotalInVehicleTime: j.TotalInVehicleTime(),
		TotalWalkingTime:   j.TotalWalkingTime(),

		WaitingTimes:   j.WaitingTimes(),
		InVehicleTimes: j.InVehicleTimes(),
		WalkingTimes:   j.WalkingTimes(),

		Stops:             stops,
		TransferStopPairs: j.TransferStopPairs(),
		TransferTripPairs: j.TransferTripPairs(),
	}

	err := copier.CopyWithOption(&record.Legs, j.Legs, copier.Option{IgnoreEmpty: true, DeepCopy: true})
	if err != nil {
		log.Error().Err(err).Msg("Failed to copy journey legs")
		record.Legs = append([]journey.Leg{}, j.Legs...)
	}

	record.PrimaryIdentifier = record.GenerateFunctionalHash()

	return record
}

// Journey rebuilds the journey this record snapshotted, for consumers that
// need the live accessors again (trace hydration).
func (r *JourneyRecord) Journey() *journey.Journey {
	return journey.NewJourney(r.Legs...)
}

// GenerateFunctionalHash identifies a journey by what it functionally is -
// same feed, same legs, same hash.
func (r *JourneyRecord) GenerateFunctionalHash() string {
	hash := sha256.New()

	hash.Write([]byte(r.Feed))

	for _, leg := range r.Legs {
		hash.Write([]byte(leg.DepartureStop))
		hash.Write([]byte(leg.ArrivalStop))
		hash.Write([]byte(fmt.Sprintf("%d", leg.DepartureTime)))
		hash.Write([]byte(fmt.Sprintf("%d", leg.ArrivalTime)))
		hash.Write([]byte(leg.TripID))
	}

	return fmt.Sprintf("%x", hash.Sum(nil))
}
