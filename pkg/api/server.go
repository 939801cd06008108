package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinera/itinera/pkg/api/routes"
	"github.com/itinera/itinera/pkg/directory"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	routes.Setup(directory.NewResolver())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StopsRouter(group.Group("/stops"))

	routes.JourneysRouter(group.Group("/journeys"))

	routes.FrontierRouter(group.Group("/frontier"))

	routes.StatsRouter(group.Group("/stats"))

	routes.AnalysisRouter(group.Group("/analysis"))

	return webApp.Listen(listen)
}
