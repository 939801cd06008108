package routes

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/dataaggregator"
	"github.com/itinera/itinera/pkg/dataaggregator/query"
	"github.com/itinera/itinera/pkg/trace"
	"github.com/liip/sheriff"
)

func JourneysRouter(router fiber.Router) {
	router.Get("/:identifier", getJourney)
	router.Get("/:identifier/trace", getJourneyTrace)
}

// queryInt64 parses a unix-seconds query value without passing through int,
// which would truncate on 32-bit platforms.
func queryInt64(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}

	return parsed
}

func getJourney(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	detailed := c.QueryBool("detailed", false)

	record, err := dataaggregator.Lookup[*analysis.JourneyRecord](query.JourneyRecord{
		PrimaryIdentifier: identifier,
	})

	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	groups := []string{"basic"}
	if detailed {
		groups = append(groups, "detailed")
	}

	recordReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, record)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce JourneyRecord",
		})
	}

	return c.JSON(recordReduced)
}

func getJourneyTrace(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	record, err := dataaggregator.Lookup[*analysis.JourneyRecord](query.JourneyRecord{
		PrimaryIdentifier: identifier,
	})

	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	from := queryInt64(c.Query("from"), record.DepartureTime)
	to := queryInt64(c.Query("to"), record.ArrivalTime)
	step := queryInt64(c.Query("step"), 60)
	tail := queryInt64(c.Query("tail"), 120)

	path, err := trace.BuildPath(context.Background(), resolver, resolver, record.Journey())
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bounds":   path.Bounds(),
		"segments": path,
		"frames":   trace.SampleRange(path, from, to, step),
		"window":   path.Window(to, tail),
	})
}
