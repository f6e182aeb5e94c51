package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/mishatunikov/blogicum/app/controllers"
	"github.com/mishatunikov/blogicum/internal/pkg/env"
	"github.com/mishatunikov/blogicum/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/login", controllers.HandleAuthLogin)
	group.Post("/login", controllers.HandleAuthLogin)
	group.Get("/register", controllers.HandleAuthRegister)
	group.Post("/register", controllers.HandleAuthRegister)

	// Post form routes precede /posts/:id so "create" is not read as an id
	group.Get("/posts/create", middleware.RequireAuth, controllers.HandlePostCreate)
	group.Post("/posts/create", middleware.RequireAuth, controllers.HandlePostCreate)
	group.Get("/posts/:id", controllers.HandlePostDetail)
	group.Get("/posts/:id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	group.Post("/posts/:id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	group.Post("/posts/:id/delete", middleware.RequireAuth, controllers.HandlePostDelete)

	// Comment creation serves POST only; the handler bounces GET back to
	// the post detail page before it asks for a login, so no RequireAuth
	group.All("/posts/:id/comment", controllers.HandleCommentCreate)
	group.Get("/posts/:post_id/edit_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentEdit)
	group.Post("/posts/:post_id/edit_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentEdit)
	group.Post("/posts/:post_id/delete_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentDelete)

	// Profile edit precedes /profile/:username for the same reason
	group.Get("/profile/edit", middleware.RequireAuth, controllers.HandleProfileEdit)
	group.Post("/profile/edit", middleware.RequireAuth, controllers.HandleProfileEdit)
	group.Get("/profile/:username", controllers.HandleProfile)
}
