package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/parallax-vis/parallax/internal/server/middleware"
	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/logger"
)

// AskHandler answers a free-text question against the loaded record set.
// Every failure mode inside Ask has a defined fallback, so this handler
// always returns 200 with an answer string.
func AskHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var body struct {
		Question string `json:"question" validate:"required"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	var rels []common.Relationship
	if snapshot := app.Controller.Snapshot(); snapshot != nil {
		rels = snapshot.Relationships
	}

	answerID, err := gonanoid.New()
	if err != nil {
		logger.Warn("failed to generate answer id", "err", err)
	}

	answer := app.Interrogate.Ask(c.Request().Context(), body.Question, rels)
	return c.JSON(http.StatusOK, map[string]string{
		"id":     answerID,
		"answer": answer,
	})
}
