package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/itinera/itinera/pkg/redis_client"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// The admission decision is a read-modify-write on one snapshot key, so every
// consumer judging candidates for the same origin/destination frontier must
// hold this lock across the whole Get, Add, Set cycle. Without it two
// concurrent submissions both judge against the same stale snapshot and the
// last write wins, durably admitting a journey the other admission dominates.

const frontierLockTTL = 10 * time.Second

func frontierLockKey(feed string, origin string, destination string) string {
	return fmt.Sprintf("frontierlock/%s/%s/%s", feed, origin, destination)
}

// acquireFrontierLock blocks until the per-frontier lock is held or the
// retry window runs out.
func acquireFrontierLock(ctx context.Context, key string, token string) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 10 * time.Millisecond
	retry.MaxElapsedTime = frontierLockTTL

	return backoff.Retry(func() error {
		acquired, err := redis_client.Client.SetNX(ctx, key, token, frontierLockTTL).Result()
		if err != nil {
			return backoff.Permanent(err)
		}

		if !acquired {
			return errors.New("frontier lock held by another consumer")
		}

		return nil
	}, backoff.WithContext(retry, ctx))
}

// Release only deletes the key if it still holds our token, so a lock that
// expired and was re-acquired elsewhere is never stolen back.
var releaseFrontierLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func releaseFrontierLock(ctx context.Context, key string, token string) {
	err := releaseFrontierLockScript.Run(ctx, redis_client.Client, []string{key}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error().Err(err).Str("key", key).Msg("Failed to release frontier lock")
	}
}
