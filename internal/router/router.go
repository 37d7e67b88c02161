// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/moviweb/internal/handler"
)

// RegisterRoutes wires every endpoint of the catalog API onto the
// provided Echo instance. The API is unauthenticated; all routes
// besides the health check live under /v1.
func RegisterRoutes(e *echo.Echo, u *handler.UserHandler, m *handler.MovieHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Users
	v1.GET("/users", u.List)
	v1.POST("/users", u.Create)
	v1.GET("/users/:id", u.Get)
	v1.DELETE("/users/:id", u.Delete)

	// Movies of a user
	v1.GET("/users/:id/movies", m.ListForUser)
	v1.POST("/users/:id/movies", m.Add)

	// Movies by id
	v1.GET("/movies/:id", m.Get)
	v1.PATCH("/movies/:id", m.Update)
	v1.DELETE("/movies/:id", m.Delete)
}
