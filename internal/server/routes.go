package server

import (
	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	api := e.Group("/api")

	// Dataset routes
	api.GET("/relationships", routes.GetRelationshipsHandler)
	api.GET("/actors", routes.SearchActorsHandler)
	api.GET("/documents/:id", routes.GetDocumentHandler)
	api.GET("/documents/:id/text", routes.GetDocumentTextHandler)
	api.POST("/search", routes.DeepSearchHandler)

	// Derived view routes
	api.GET("/views/graph", routes.GetGraphViewHandler)
	api.GET("/views/spatial", routes.GetSpatialViewHandler)
	api.GET("/views/locations", routes.GetLocationsViewHandler)
	api.GET("/views/bubble", routes.GetBubbleViewHandler)

	// View state routes
	api.GET("/filters", routes.GetFiltersHandler)
	api.PATCH("/filters", routes.PatchFiltersHandler)
	api.POST("/filters/clusters/:id", routes.ToggleClusterHandler)
	api.POST("/filters/categories/:name", routes.ToggleCategoryHandler)
	api.POST("/selection", routes.PostSelectionHandler)
	api.DELETE("/selection", routes.ClearSelectionHandler)
	api.POST("/mode/:mode", routes.SetModeHandler)
	api.POST("/nodes/:name/pin", routes.PinNodeHandler)
	api.DELETE("/nodes/:name/pin", routes.ReleaseNodeHandler)

	// Interrogation route
	api.POST("/ask", routes.AskHandler)
}
