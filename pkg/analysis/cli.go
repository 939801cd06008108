package analysis

import (
	"context"
	"fmt"
	"os"

	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/elastic_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/bson"
)

func loadRecords(query bson.M) ([]*JourneyRecord, error) {
	recordsCollection := database.GetCollection("journey_records")

	cursor, err := recordsCollection.Find(context.Background(), query)
	if err != nil {
		return nil, err
	}

	var records []*JourneyRecord
	for cursor.Next(context.TODO()) {
		var record JourneyRecord
		if err := cursor.Decode(&record); err != nil {
			log.Error().Err(err).Msg("Failed to decode JourneyRecord")
			continue
		}

		records = append(records, &record)
	}

	return records, nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Query, export and index journey records",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "export journey records as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "feed",
						Usage: "only export records from this feed",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "record filter expression, e.g. 'transfers > 1 && travel_time < 3600'",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "output file, defaults to stdout",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					query := bson.M{}
					if c.String("feed") != "" {
						query["feed"] = c.String("feed")
					}

					records, err := loadRecords(query)
					if err != nil {
						return err
					}

					var filter *Filter
					if c.String("filter") != "" {
						filter, err = CompileFilter(c.String("filter"))
						if err != nil {
							return err
						}
					}

					output := os.Stdout
					if c.String("output") != "" {
						output, err = os.Create(c.String("output"))
						if err != nil {
							return err
						}
						defer output.Close()
					}

					return ExportCSV(records, filter, output)
				},
			},
			{
				Name:  "index",
				Usage: "re-index archived record bundles from a cloud bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "bucket",
						Usage:    "cloud bucket holding record bundles",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					indexer := Indexer{
						CloudBucketName: c.String("bucket"),
					}
					indexer.Perform()

					return nil
				},
			},
			{
				Name:  "summary",
				Usage: "print per origin/destination summaries",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "feed",
						Usage: "only summarise records from this feed",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					query := bson.M{}
					if c.String("feed") != "" {
						query["feed"] = c.String("feed")
					}

					records, err := loadRecords(query)
					if err != nil {
						return err
					}

					for _, summary := range Summarise(records) {
						fmt.Printf("%s -> %s (%d journeys): travel time mean %.0fs median %.0fs p90 %.0fs, transfers mean %.1f max %.0f\n",
							summary.OriginStopRef, summary.DestinationStopRef, summary.Count,
							summary.TravelTime.Mean, summary.TravelTime.Median, summary.TravelTime.P90,
							summary.Transfers.Mean, summary.Transfers.Max)
					}

					return nil
				},
			},
		},
	}
}
