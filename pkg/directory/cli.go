package directory

import (
	"os"

	"github.com/itinera/itinera/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "directory",
		Usage: "Manage the stop & trip directory",
		Subcommands: []*cli.Command{
			{
				Name:  "import-stops",
				Usage: "import stops from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the stops CSV file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					file, err := os.Open(c.String("file"))
					if err != nil {
						return err
					}
					defer file.Close()

					return ImportStops(file)
				},
			},
			{
				Name:  "import-trips",
				Usage: "import trips from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the trips CSV file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					file, err := os.Open(c.String("file"))
					if err != nil {
						return err
					}
					defer file.Close()

					return ImportTrips(file)
				},
			},
		},
	}
}
