package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mishatunikov/blogicum/app/controllers"
	"github.com/mishatunikov/blogicum/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public listings
	app.Get("/", controllers.HandleIndex)
	app.Get("/category/:slug", controllers.HandleCategory)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}
