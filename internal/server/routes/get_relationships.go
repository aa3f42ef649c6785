package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
)

// GetRelationshipsHandler returns the currently filtered record set, the
// stable snapshot every view renders from.
func GetRelationshipsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	snapshot := app.Controller.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusOK, map[string]any{"relationships": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"relationships": snapshot.Relationships,
	})
}

// SearchActorsHandler matches actor names by substring. Queries shorter
// than two characters yield an empty result; the minimum is enforced
// here, not in the store.
func SearchActorsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	q := c.QueryParam("q")
	if len(q) < 2 {
		return c.JSON(http.StatusOK, map[string]any{"actors": []any{}})
	}

	actors, err := app.Storage.SearchActors(c.Request().Context(), q)
	if err != nil {
		// Store failures degrade to an empty result, never a dead view.
		return c.JSON(http.StatusOK, map[string]any{"actors": []any{}})
	}
	return c.JSON(http.StatusOK, map[string]any{"actors": actors})
}
