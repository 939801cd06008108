package transfergraph

import (
	"context"

	"github.com/itinera/itinera/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "transfer-graph",
		Usage: "Maintain the Neo4j graph of observed transfers",
		Subcommands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "sync a feeds recorded transfers into the graph",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "identifier of the feed to sync",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					graphSync := GraphSync{
						Feed: c.String("feed"),
					}

					return graphSync.Perform(context.Background())
				},
			},
		},
	}
}
