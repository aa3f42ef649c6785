package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
)

// GetGraphViewHandler returns the force-laid-out flat graph: the top
// connected entities and the deduplicated links between them.
func GetGraphViewHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	snapshot := app.Controller.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusOK, map[string]any{"nodes": []any{}, "links": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"nodes": snapshot.GraphNodes,
		"links": snapshot.GraphLinks,
	})
}

// GetSpatialViewHandler returns the hop-ring placement with time-depth Z.
func GetSpatialViewHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	snapshot := app.Controller.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusOK, map[string]any{"nodes": []any{}, "links": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"nodes": snapshot.SpatialNodes,
		"links": snapshot.GraphLinks,
	})
}

// GetLocationsViewHandler returns the location buckets for the globe.
func GetLocationsViewHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	snapshot := app.Controller.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusOK, map[string]any{"locations": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{"locations": snapshot.Buckets})
}

// GetBubbleViewHandler returns the co-occurrence map of unlocated events.
func GetBubbleViewHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	snapshot := app.Controller.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusOK, map[string]any{"nodes": []any{}, "links": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"nodes": snapshot.BubbleNodes,
		"links": snapshot.BubbleLinks,
	})
}
