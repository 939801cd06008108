package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

func FrontierRouter(router fiber.Router) {
	router.Get("/:feed/:origin/:destination", getFrontier)
}

func getFrontier(c *fiber.Ctx) error {
	snapshot, _ := frontierCache.Get(context.Background(),
		c.Params("feed"), c.Params("origin"), c.Params("destination"))

	if len(snapshot.Members) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No frontier exists for this feed and stop pair",
		})
	}

	return c.JSON(snapshot)
}
