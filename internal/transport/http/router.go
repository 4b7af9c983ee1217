package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexmontanha/MeuProjetoAPI/internal/handlers"
	authmw "github.com/alexmontanha/MeuProjetoAPI/internal/middleware/auth"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	// SearchHandler is nil when no search cluster is configured, the route
	// is simply not mounted then.
	SearchHandler *handlers.SearchHandler
	// AdminJWTSecret guards write routes when non-empty. Left empty the API
	// is fully open, which is how local and test setups run.
	AdminJWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Handler)
	}

	products := api.Group("/produto")

	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	writes := products
	if len(d.AdminJWTSecret) > 0 {
		writes = products.Group("", authmw.RequireAdmin(d.AdminJWTSecret))
	}

	writes.POST("", d.ProductHandler.CreateProduct)
	writes.PUT("/:id", d.ProductHandler.ReplaceProduct)
	writes.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
