package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/logger"
)

// DeepSearchHandler runs one full-text lookup across events, documents
// and actors. A failed search degrades to an empty result set.
func DeepSearchHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var body struct {
		Term     string `json:"term" validate:"required"`
		Thorough bool   `json:"thorough"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "term is required"})
	}

	result, err := app.Storage.DeepSearch(c.Request().Context(), body.Term, body.Thorough)
	if err != nil {
		logger.Warn("deep search failed", "term", body.Term, "err", err)
		return c.JSON(http.StatusOK, common.SearchResult{Query: body.Term})
	}
	return c.JSON(http.StatusOK, result)
}
