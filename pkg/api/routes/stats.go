package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/database"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

func StatsRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getStopPairStats)
}

func getStopPairStats(c *fiber.Ctx) error {
	origin := c.Params("origin")
	destination := c.Params("destination")

	recordsCollection := database.GetCollection("journey_records")
	cursor, err := recordsCollection.Find(context.Background(), bson.M{
		"originstopref":      origin,
		"destinationstopref": destination,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var records []*analysis.JourneyRecord
	for cursor.Next(context.TODO()) {
		var record analysis.JourneyRecord
		if err := cursor.Decode(&record); err != nil {
			log.Error().Err(err).Msg("Failed to decode JourneyRecord")
			continue
		}

		records = append(records, &record)
	}

	summaries := analysis.Summarise(records)
	if len(summaries) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No journey records exist for this stop pair",
		})
	}

	return c.JSON(summaries[0])
}
