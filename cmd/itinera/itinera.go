package main

import (
	"os"
	"time"

	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/api"
	"github.com/itinera/itinera/pkg/archiver"
	"github.com/itinera/itinera/pkg/directory"
	"github.com/itinera/itinera/pkg/ingest"
	"github.com/itinera/itinera/pkg/inspect"
	"github.com/itinera/itinera/pkg/transfergraph"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	godotenv.Load()

	if os.Getenv("ITINERA_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ITINERA_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "itinera",
		Description: "Single binary of truth for Itinera - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			ingest.RegisterCLI(),
			directory.RegisterCLI(),
			analysis.RegisterCLI(),
			archiver.RegisterCLI(),
			transfergraph.RegisterCLI(),
			inspect.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
