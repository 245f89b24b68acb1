package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skotchmaster/storefront/internal/middleware"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	AuthHandler    *AuthHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	api := e.Group("/api")
	api.POST("/signup", d.AuthHandler.Signup)
	api.POST("/login", d.AuthHandler.Login)
	api.GET("/me", d.AuthHandler.Me, middleware.RequireAuth(d.JWTSecret))
}
