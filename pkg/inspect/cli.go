package inspect

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/journey"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Debugging tools for poking at journeys locally",
		Subcommands: []*cli.Command{
			{
				Name:  "journey",
				Usage: "build a journey from a JSON legs file and dump its analysis",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to a JSON file containing an array of legs",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					legsJSON, err := os.ReadFile(c.String("file"))
					if err != nil {
						return err
					}

					var legs []journey.Leg
					if err := json.Unmarshal(legsJSON, &legs); err != nil {
						return err
					}

					if len(legs) == 0 {
						return errors.New("legs file contains no legs")
					}

					for _, leg := range legs {
						if err := leg.Validate(); err != nil {
							return err
						}
					}

					builtJourney := journey.NewJourney(legs...)

					record := analysis.NewRecord(builtJourney, analysis.RecordMeta{
						Feed:        "inspect",
						RequestedAt: time.Now(),
					})

					pretty.Println(record)

					return nil
				},
			},
		},
	}
}
