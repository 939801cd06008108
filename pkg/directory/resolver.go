package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/itinera/itinera/pkg/dataaggregator"
	"github.com/itinera/itinera/pkg/dataaggregator/query"
	"github.com/itinera/itinera/pkg/redis_client"
	"github.com/itinera/itinera/pkg/trace"
)

// Resolver answers stop and trip lookups for trace hydration, with a Redis
// cache in front of the registered data sources.
type Resolver struct {
	stopCache *cache.Cache[*Stop]
	tripCache *cache.Cache[*TripInfo]
}

func NewResolver() *Resolver {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(30*time.Minute))

	return &Resolver{
		stopCache: cache.New[*Stop](redisStore),
		tripCache: cache.New[*TripInfo](redisStore),
	}
}

func (r *Resolver) GetStop(ctx context.Context, stopID string) (*Stop, error) {
	cacheKey := fmt.Sprintf("directory/stop/%s", stopID)

	cached, err := r.stopCache.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		return cached, nil
	}

	stop, err := dataaggregator.Lookup[*Stop](query.Stop{
		PrimaryIdentifier: stopID,
	})
	if err != nil {
		return nil, err
	}

	r.stopCache.Set(ctx, cacheKey, stop)

	return stop, nil
}

func (r *Resolver) GetTrip(ctx context.Context, tripID string) (*TripInfo, error) {
	cacheKey := fmt.Sprintf("directory/trip/%s", tripID)

	cached, err := r.tripCache.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		return cached, nil
	}

	trip, err := dataaggregator.Lookup[*TripInfo](query.Trip{
		PrimaryIdentifier: tripID,
	})
	if err != nil {
		return nil, err
	}

	r.tripCache.Set(ctx, cacheKey, trip)

	return trip, nil
}

// LocateStop implements trace.StopLocator
func (r *Resolver) LocateStop(ctx context.Context, stopID string) (trace.Location, error) {
	stop, err := r.GetStop(ctx, stopID)
	if err != nil {
		return trace.Location{}, err
	}

	if stop.Location == nil {
		return trace.Location{}, fmt.Errorf("stop %s has no location", stopID)
	}

	return *stop.Location, nil
}

// ResolveTrip implements trace.TripResolver
func (r *Resolver) ResolveTrip(ctx context.Context, tripID string) (trace.RouteType, error) {
	trip, err := r.GetTrip(ctx, tripID)
	if err != nil {
		return trace.RouteTypeUnknown, err
	}

	return trip.RouteType, nil
}
