package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"shopcore/initializers"
	"shopcore/routes"
)

func main() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatal("Failed to load environment variables: ", err)
	}

	initializers.ConnectDB(&config)
	initializers.ConnectRedis(&config)
	initializers.ConnectBroker(&config)
	initializers.ConnectTelegram(&config)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))

	// Requests read the config from locals instead of a package global.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", &config)
		return c.Next()
	})

	app.Get("/api/healthchecker", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "shopcore is running",
		})
	})

	routes.SetupRoutes(app)
	routes.NotFoundRoute(app)

	port := config.Port
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
