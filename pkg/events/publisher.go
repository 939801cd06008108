package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/itinera/itinera/pkg/util"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// PublisherMetrics is implemented by whoever counts publish outcomes.
type PublisherMetrics interface {
	EventPublishedInc()
	EventPublishErrInc()
	NATSSetConnected(connected bool)
}

// Publisher emits journey record events onto NATS. When ITINERA_NATS_URL is
// unset every publish is a silent no-op, so callers never need to care
// whether eventing is configured.
type Publisher struct {
	conn    *nats.Conn
	metrics PublisherMetrics
}

func NewPublisher(metrics PublisherMetrics) (*Publisher, error) {
	env := util.GetEnvironmentVariables()

	if env["ITINERA_NATS_URL"] == "" {
		log.Info().Msg("Skipping NATS setup")
		return &Publisher{metrics: metrics}, nil
	}

	conn, err := nats.Connect(env["ITINERA_NATS_URL"],
		nats.Name("itinera"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if metrics != nil {
				metrics.NATSSetConnected(false)
			}
			log.Warn().Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if metrics != nil {
				metrics.NATSSetConnected(true)
			}
			log.Info().Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}

	if metrics != nil {
		metrics.NATSSetConnected(true)
	}

	log.Info().Msgf("NATS client setup for %s", env["ITINERA_NATS_URL"])

	return &Publisher{conn: conn, metrics: metrics}, nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
		p.conn.Close()
	}
}

// RecordedEvent is the summary published whenever a journey record is
// admitted to a frontier.
type RecordedEvent struct {
	Feed string `json:"feed"`

	RecordID string `json:"record_id"`

	OriginStopRef      string `json:"origin"`
	DestinationStopRef string `json:"destination"`

	DepartureTime int64 `json:"departure_time"`
	ArrivalTime   int64 `json:"arrival_time"`
	Boardings     int   `json:"boardings"`

	RecordedAt time.Time `json:"recorded_at"`
}

func (p *Publisher) PublishRecorded(event RecordedEvent) {
	if p.conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode recorded event")
		return
	}

	subject := fmt.Sprintf("itinera.journeys.recorded.%s", event.Feed)

	if err := p.conn.Publish(subject, payload); err != nil {
		if p.metrics != nil {
			p.metrics.EventPublishErrInc()
		}
		log.Error().Err(err).Str("subject", subject).Msg("Failed to publish recorded event")
		return
	}

	if p.metrics != nil {
		p.metrics.EventPublishedInc()
	}
}
