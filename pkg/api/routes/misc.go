package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/directory"
	"github.com/itinera/itinera/pkg/ingest"
)

// Shared handler state, set once at server startup before fiber starts
// serving - handlers run concurrently and must never write these.
var resolver *directory.Resolver
var frontierCache *ingest.FrontierCache

func Setup(r *directory.Resolver) {
	resolver = r
	frontierCache = ingest.NewFrontierCache(30 * time.Minute)
}

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": "1.0",
	})
}
