package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/events"
	"github.com/itinera/itinera/pkg/journey"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Submission is the payload the external search process places on a feed
// queue: one discovered journey as an ordered list of legs.
type Submission struct {
	Feed string `json:"feed"`

	RequestedAt time.Time `json:"requested_at"`

	Legs []journey.Leg `json:"legs"`
}

// Validate is the runtime echo of the leg type contract at the queue
// boundary - a bad submission is rejected whole, never partially applied.
func (s *Submission) Validate() error {
	if len(s.Legs) == 0 {
		return errors.New("submission carries no legs")
	}

	for _, leg := range s.Legs {
		if err := leg.Validate(); err != nil {
			return err
		}
	}

	return nil
}

type BatchConsumer struct {
	id int

	feed Feed

	frontierCache *FrontierCache
	publisher     *events.Publisher
	metrics       *Collector
}

func NewBatchConsumer(id int, feed Feed, frontierCache *FrontierCache, publisher *events.Publisher, metrics *Collector) *BatchConsumer {
	return &BatchConsumer{
		id: id,

		feed: feed,

		frontierCache: frontierCache,
		publisher:     publisher,
		metrics:       metrics,
	}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	var recordOperations []mongo.WriteModel

	for _, payload := range payloads {
		var submission *Submission
		if err := json.Unmarshal([]byte(payload), &submission); err != nil {
			consumer.metrics.Invalid.WithLabelValues(consumer.feed.Identifier).Inc()
			log.Error().Err(err).Msg("Failed to decode submission")
			continue
		}

		writeModel := consumer.processSubmission(submission)
		if writeModel != nil {
			recordOperations = append(recordOperations, writeModel)
		}
	}

	if len(recordOperations) > 0 {
		recordsCollection := database.GetCollection("journey_records")

		startTime := time.Now()
		_, err := recordsCollection.BulkWrite(context.Background(), recordOperations, &options.BulkWriteOptions{})
		log.Info().Int("Length", len(recordOperations)).Str("Time", time.Since(startTime).String()).Msg("Bulk write")

		if err != nil {
			log.Error().Err(err).Msg("Failed to bulk write journey records")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack submission")
		}
	}
}

func (consumer *BatchConsumer) processSubmission(submission *Submission) mongo.WriteModel {
	startTime := time.Now()
	defer func() {
		consumer.metrics.BuildDuration.Observe(time.Since(startTime).Seconds())
	}()

	consumer.metrics.Submissions.WithLabelValues(consumer.feed.Identifier).Inc()

	if err := submission.Validate(); err != nil {
		consumer.metrics.Invalid.WithLabelValues(consumer.feed.Identifier).Inc()
		log.Error().Err(err).Msg("Rejecting invalid submission")
		return nil
	}

	builtJourney := journey.NewJourney(submission.Legs...)
	record := analysis.NewRecord(builtJourney, analysis.RecordMeta{
		Feed:        consumer.feed.Identifier,
		RequestedAt: submission.RequestedAt,
	})

	ctx := context.Background()

	// Hold the per-frontier lock across the whole Get, Add, Set cycle -
	// concurrent consumers judging the same stop pair against a stale
	// snapshot could otherwise admit a journey the other admission dominates
	lockKey := frontierLockKey(consumer.feed.Identifier, record.OriginStopRef, record.DestinationStopRef)
	lockToken := fmt.Sprintf("%d-%d", consumer.id, time.Now().UnixNano())

	if err := acquireFrontierLock(ctx, lockKey, lockToken); err != nil {
		log.Error().Err(err).Str("record", record.PrimaryIdentifier).Msg("Failed to acquire frontier lock")
		return nil
	}
	defer releaseFrontierLock(ctx, lockKey, lockToken)

	snapshot, _ := consumer.frontierCache.Get(ctx, consumer.feed.Identifier, record.OriginStopRef, record.DestinationStopRef)
	currentFrontier, memberLookup := snapshot.Rebuild(consumer.feed.Dominance.ConsiderTime, consumer.feed.Dominance.ConsiderBoardings)

	if !currentFrontier.Add(builtJourney) {
		consumer.metrics.Dominated.WithLabelValues(consumer.feed.Identifier).Inc()

		log.Debug().
			Str("record", record.PrimaryIdentifier).
			Str("origin", record.OriginStopRef).
			Str("destination", record.DestinationStopRef).
			Msg("Submission dominated by existing frontier")

		return nil
	}

	memberLookup[builtJourney] = FrontierMember{
		RecordID: record.PrimaryIdentifier,

		DepartureTime: record.DepartureTime,
		ArrivalTime:   record.ArrivalTime,
		Boardings:     record.Boardings,

		Legs: record.Legs,
	}

	// survivors only - journeys the candidate evicted are gone
	snapshot.Members = nil
	for _, member := range currentFrontier.Journeys() {
		snapshot.Members = append(snapshot.Members, memberLookup[member])
	}

	if err := consumer.frontierCache.Set(ctx, snapshot); err != nil {
		log.Error().Err(err).Msg("Failed to write frontier snapshot")
	}

	consumer.metrics.Admitted.WithLabelValues(consumer.feed.Identifier).Inc()

	analysis.IndexRecord(record)

	consumer.publisher.PublishRecorded(events.RecordedEvent{
		Feed: consumer.feed.Identifier,

		RecordID: record.PrimaryIdentifier,

		OriginStopRef:      record.OriginStopRef,
		DestinationStopRef: record.DestinationStopRef,

		DepartureTime: record.DepartureTime,
		ArrivalTime:   record.ArrivalTime,
		Boardings:     record.Boardings,

		RecordedAt: time.Now(),
	})

	writeModel := mongo.NewReplaceOneModel()
	writeModel.SetFilter(bson.M{"primaryidentifier": record.PrimaryIdentifier})
	writeModel.SetReplacement(record)
	writeModel.SetUpsert(true)

	return writeModel
}
