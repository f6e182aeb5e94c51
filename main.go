package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/mishatunikov/blogicum/internal/pkg/cache"
	"github.com/mishatunikov/blogicum/internal/pkg/database"
	"github.com/mishatunikov/blogicum/internal/pkg/env"
	"github.com/mishatunikov/blogicum/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	engine := html.New("./views", ".html")
	// nullable FK ids need unwrapping before template comparisons
	engine.AddFunc("deref", func(id *uint) uint {
		if id == nil {
			return 0
		}
		return *id
	})
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 10 * 1024 * 1024, // post images stay small
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())
	app.Static("/", "./public/assets")
	app.Static("/uploads", "./uploads")

	// ROUTER
	router.InstallRouter(app)

	return app
}
