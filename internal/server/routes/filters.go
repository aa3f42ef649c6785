package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
	"github.com/parallax-vis/parallax/pkg/common"
)

// GetFiltersHandler returns the live filter values, including debounced
// edits that have not triggered a recompute yet.
func GetFiltersHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Controller.Filters())
}

// PatchFiltersHandler records a continuous filter edit. The new values
// echo immediately; the refetch/recompute chain is debounced, so rapid
// edits collapse to one recomputation with the final values.
func PatchFiltersHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var body common.FilterState
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid filter body"})
	}

	app.Controller.SetFilters(body)
	return c.JSON(http.StatusOK, app.Controller.Filters())
}

// ToggleClusterHandler flips one tag cluster's membership, immediately.
func ToggleClusterHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cluster id"})
	}

	app.Controller.ToggleCluster(id)
	return c.JSON(http.StatusOK, app.Controller.Filters())
}

// ToggleCategoryHandler flips one document category's membership,
// immediately.
func ToggleCategoryHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	app.Controller.ToggleCategory(c.Param("name"))
	return c.JSON(http.StatusOK, app.Controller.Filters())
}
