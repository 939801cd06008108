package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/journey"
	"github.com/liip/sheriff"
)

type analysisRequest struct {
	Legs []journey.Leg `json:"legs"`
}

func AnalysisRouter(router fiber.Router) {
	router.Post("/", postAnalysis)
}

// postAnalysis exposes the journey read accessors over HTTP: build the
// submitted legs into a journey and return every derived metric.
func postAnalysis(c *fiber.Ctx) error {
	var request analysisRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be JSON containing a list of legs",
		})
	}

	if len(request.Legs) == 0 {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"error": "At least one leg is required",
		})
	}

	for _, leg := range request.Legs {
		if err := leg.Validate(); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	record := analysis.NewRecord(journey.NewJourney(request.Legs...), analysis.RecordMeta{})

	recordReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, record)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce JourneyRecord",
		})
	}

	return c.JSON(recordReduced)
}
