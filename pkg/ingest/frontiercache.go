package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/itinera/itinera/pkg/frontier"
	"github.com/itinera/itinera/pkg/journey"
	"github.com/itinera/itinera/pkg/redis_client"
)

// FrontierMember is one non-dominated journey held in a cached frontier.
// Legs are carried so the frontier can be rebuilt with full dominance
// semantics; the summary fields exist for API consumers.
type FrontierMember struct {
	RecordID string `json:"record_id"`

	DepartureTime int64 `json:"departure_time"`
	ArrivalTime   int64 `json:"arrival_time"`
	Boardings     int   `json:"boardings"`

	Legs []journey.Leg `json:"legs"`
}

// FrontierSnapshot is the cached state of one origin/destination frontier
// within a feed.
type FrontierSnapshot struct {
	Feed               string `json:"feed"`
	OriginStopRef      string `json:"origin"`
	DestinationStopRef string `json:"destination"`

	Members []FrontierMember `json:"members"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s FrontierSnapshot) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *FrontierSnapshot) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// Rebuild reconstructs the live frontier from the snapshot, returning the
// frontier and a lookup from rebuilt journey to its member summary.
func (s *FrontierSnapshot) Rebuild(considerTime bool, considerBoardings bool) (*frontier.Frontier, map[*journey.Journey]FrontierMember) {
	f := frontier.NewFrontier(considerTime, considerBoardings)
	members := map[*journey.Journey]FrontierMember{}

	for _, member := range s.Members {
		j := journey.NewJourney(member.Legs...)

		if f.Add(j) {
			members[j] = member
		}
	}

	return f, members
}

type FrontierCache struct {
	cache *cache.Cache[*FrontierSnapshot]
}

func NewFrontierCache(ttl time.Duration) *FrontierCache {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(ttl))

	return &FrontierCache{
		cache: cache.New[*FrontierSnapshot](redisStore),
	}
}

func frontierCacheKey(feed string, origin string, destination string) string {
	return fmt.Sprintf("frontier/%s/%s/%s", feed, origin, destination)
}

func (c *FrontierCache) Get(ctx context.Context, feed string, origin string, destination string) (*FrontierSnapshot, error) {
	snapshot, err := c.cache.Get(ctx, frontierCacheKey(feed, origin, destination))
	if err != nil || snapshot == nil {
		return &FrontierSnapshot{
			Feed:               feed,
			OriginStopRef:      origin,
			DestinationStopRef: destination,
		}, err
	}

	return snapshot, nil
}

func (c *FrontierCache) Set(ctx context.Context, snapshot *FrontierSnapshot) error {
	snapshot.UpdatedAt = time.Now()

	return c.cache.Set(ctx, frontierCacheKey(snapshot.Feed, snapshot.OriginStopRef, snapshot.DestinationStopRef), snapshot)
}
