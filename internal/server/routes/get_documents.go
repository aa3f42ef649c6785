package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/server/middleware"
)

// GetDocumentHandler returns one document's metadata.
func GetDocumentHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document id"})
	}

	doc, err := app.Storage.GetDocument(c.Request().Context(), docID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
	}
	return c.JSON(http.StatusOK, doc)
}

// GetDocumentTextHandler returns a document's full extracted text.
func GetDocumentTextHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document id"})
	}

	text, err := app.Storage.GetDocumentText(c.Request().Context(), docID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}
