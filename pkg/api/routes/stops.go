package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/dataaggregator"
	"github.com/itinera/itinera/pkg/dataaggregator/query"
	"github.com/itinera/itinera/pkg/directory"
	"github.com/liip/sheriff"
)

func StopsRouter(router fiber.Router) {
	router.Get("/:identifier", getStop)
}

func getStop(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	stop, err := dataaggregator.Lookup[*directory.Stop](query.Stop{
		PrimaryIdentifier: identifier,
	})

	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Stop Identifier",
		})
	}

	stopReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, stop)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce Stop",
		})
	}

	return c.JSON(stopReduced)
}
