package archiver

import (
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/ingest"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Bundle up aged journey records and archive them",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "archive journey records older than the feed retention period",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "identifier of the feed whose retention period applies",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "feeds-directory",
						Value: "data/feeds/",
						Usage: "directory holding feed definition YAML files",
					},
					&cli.StringFlag{
						Name:  "output-directory",
						Value: "./",
						Usage: "directory to write bundles into",
					},
					&cli.BoolFlag{
						Name:  "individual-files",
						Usage: "write each record as an individual JSON file",
					},
					&cli.BoolFlag{
						Name:  "bundle",
						Value: true,
						Usage: "write a compressed tar bundle of the records",
					},
					&cli.StringFlag{
						Name:  "bucket",
						Usage: "cloud storage bucket to upload the bundle to",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					feeds, err := ingest.LoadFeeds(c.String("feeds-directory"))
					if err != nil {
						return err
					}

					feed, err := ingest.GetFeed(feeds, c.String("feed"))
					if err != nil {
						return err
					}

					archiver := Archiver{
						OutputDirectory:     c.String("output-directory"),
						WriteIndividualFile: c.Bool("individual-files"),
						WriteBundle:         c.Bool("bundle"),
						CloudUpload:         c.String("bucket") != "",
						CloudBucketName:     c.String("bucket"),

						Retention: feed.RetentionDuration(),
					}
					archiver.Perform()

					return nil
				},
			},
		},
	}
}
