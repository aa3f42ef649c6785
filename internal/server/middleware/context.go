package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/parallax-vis/parallax/internal/view"
	"github.com/parallax-vis/parallax/pkg/query"
	"github.com/parallax-vis/parallax/pkg/store"
)

// App bundles the shared collaborators every handler needs.
type App struct {
	DBConn      *pgxpool.Pool
	Storage     store.DatasetStorage
	Controller  *view.Controller
	Interrogate *query.InterrogateClient
}

// AppContext wraps the echo context with the application collaborators.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the App to every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{Context: c, App: app})
		}
	}
}
