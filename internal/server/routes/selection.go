package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
	"github.com/parallax-vis/parallax/pkg/layout"
)

// PostSelectionHandler updates the detail selection. Selecting an entity
// clears any location/event focus and vice versa; the controller owns
// those transitions.
func PostSelectionHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var body struct {
		Entity   string `json:"entity"`
		Location string `json:"location"`
		EventID  int64  `json:"event_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid selection body"})
	}

	switch {
	case body.Entity != "":
		app.Controller.SelectEntity(body.Entity)
	case body.Location != "" && body.EventID != 0:
		app.Controller.SelectLocation(body.Location)
		app.Controller.SelectEvent(body.EventID)
	case body.Location != "":
		app.Controller.SelectLocation(body.Location)
	default:
		app.Controller.ClearSelection()
	}

	return c.JSON(http.StatusOK, app.Controller.Selection())
}

// ClearSelectionHandler drops the detail selection.
func ClearSelectionHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	app.Controller.ClearSelection()
	return c.NoContent(http.StatusNoContent)
}

// SetModeHandler switches the layout mode (graph, depth, spatial).
func SetModeHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	mode := layout.Mode(c.Param("mode"))
	switch mode {
	case layout.ModeGraph, layout.ModeDepth, layout.ModeSpatial:
		app.Controller.SetMode(mode)
		return c.NoContent(http.StatusNoContent)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown mode"})
	}
}

// PinNodeHandler pins a dragged node at a fixed position until released.
func PinNodeHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pin body"})
	}

	app.Controller.PinNode(c.Param("name"), body.X, body.Y)
	return c.NoContent(http.StatusNoContent)
}

// ReleaseNodeHandler returns a pinned node to free movement.
func ReleaseNodeHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	app.Controller.ReleaseNode(c.Param("name"))
	return c.NoContent(http.StatusNoContent)
}
