package ingest

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/itinera/itinera/pkg/consumer"
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/elastic_client"
	"github.com/itinera/itinera/pkg/events"
	"github.com/itinera/itinera/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const numConsumers = 5
const batchSize = 200

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Consume journey submissions and maintain frontiers",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the ingest consumers for a feed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "identifier of the feed to consume",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "feeds-directory",
						Value: "data/feeds/",
						Usage: "directory holding feed definition YAML files",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					feeds, err := LoadFeeds(c.String("feeds-directory"))
					if err != nil {
						return err
					}

					feed, err := GetFeed(feeds, c.String("feed"))
					if err != nil {
						return err
					}

					metrics := NewCollector()

					publisher, err := events.NewPublisher(metrics)
					if err != nil {
						return err
					}
					defer publisher.Close()

					frontierCache := NewFrontierCache(feed.FrontierTTLDuration())

					redisConsumer := consumer.RedisConsumer{
						QueueName: feed.Queue,

						NumberConsumers: numConsumers,
						BatchSize:       batchSize,

						Timeout: 2 * time.Second,

						Consumer: NewBatchConsumer(0, feed, frontierCache, publisher, metrics),

						MetricsHandler: metrics.Handler(),
					}

					metrics.ActiveConsumers.Set(float64(numConsumers))

					go redisConsumer.Setup()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "cleaner",
				Usage: "run the queue cleaner for the submission queues",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					StartCleaner()

					return nil
				},
			},
		},
	}
}

func StartCleaner() {
	cleaner := rmq.NewCleaner(redis_client.QueueConnection)

	log.Info().Msg("Starting submission queue cleaner process")

	for range time.Tick(5 * time.Minute) {
		returned, err := cleaner.Clean()
		if err != nil {
			log.Error().Err(err).Msg("Failed to clean")
			continue
		}

		if returned != 0 {
			log.Info().Msgf("Cleaned %d records", returned)
		}
	}
}
