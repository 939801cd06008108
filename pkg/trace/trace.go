package trace

import (
	"context"
	"fmt"

	"github.com/itinera/itinera/pkg/journey"
	"github.com/sourcegraph/conc/pool"
)

// StopLocator resolves a stop identifier to its position. Implementations
// live outside this package - the trace only ever consumes the interface.
type StopLocator interface {
	LocateStop(ctx context.Context, stopID string) (Location, error)
}

// TripResolver resolves a trip identifier to the mode of transport running
// it. Walking legs never consult a resolver.
type TripResolver interface {
	ResolveTrip(ctx context.Context, tripID string) (RouteType, error)
}

// Segment is one leg of a journey augmented with the coordinates of its
// endpoints, ready for a map front-end to consume.
type Segment struct {
	RouteType RouteType `groups:"basic" json:"route_type"`

	FromStop string   `groups:"basic" json:"from_stop"`
	ToStop   string   `groups:"basic" json:"to_stop"`
	From     Location `groups:"basic" json:"from"`
	To       Location `groups:"basic" json:"to"`

	DepartureTime int64 `groups:"basic" json:"departure_time"`
	ArrivalTime   int64 `groups:"basic" json:"arrival_time"`
}

// Path is the coordinate-augmented rendition of a whole journey, legs in
// travel order.
type Path []Segment

const hydrationConcurrency = 16

// BuildPath hydrates every leg of a built journey through the locator and
// resolver, preserving leg order.
func BuildPath(ctx context.Context, locator StopLocator, resolver TripResolver, j *journey.Journey) (Path, error) {
	legs := j.Legs
	segments := make(Path, len(legs))
	errs := make([]error, len(legs))

	p := pool.New()
	p.WithMaxGoroutines(hydrationConcurrency)

	for index, leg := range legs {
		p.Go(func() {
			segment, err := buildSegment(ctx, locator, resolver, leg)
			if err != nil {
				errs[index] = err
				return
			}

			segments[index] = segment
		})
	}

	p.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return segments, nil
}

func buildSegment(ctx context.Context, locator StopLocator, resolver TripResolver, leg journey.Leg) (Segment, error) {
	routeType := RouteTypeWalk
	if !leg.Walk {
		var err error
		routeType, err = resolver.ResolveTrip(ctx, leg.TripID)
		if err != nil {
			return Segment{}, fmt.Errorf("resolving trip %s: %w", leg.TripID, err)
		}
	}

	from, err := locator.LocateStop(ctx, leg.DepartureStop)
	if err != nil {
		return Segment{}, fmt.Errorf("locating stop %s: %w", leg.DepartureStop, err)
	}

	to, err := locator.LocateStop(ctx, leg.ArrivalStop)
	if err != nil {
		return Segment{}, fmt.Errorf("locating stop %s: %w", leg.ArrivalStop, err)
	}

	return Segment{
		RouteType: routeType,

		FromStop: leg.DepartureStop,
		ToStop:   leg.ArrivalStop,
		From:     from,
		To:       to,

		DepartureTime: leg.DepartureTime,
		ArrivalTime:   leg.ArrivalTime,
	}, nil
}
