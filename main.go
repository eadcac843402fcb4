package main

import (
	"log"

	"github.com/therossee/thesis-proposals-sub001/config"
	"github.com/therossee/thesis-proposals-sub001/database"
	thesisRoutes "github.com/therossee/thesis-proposals-sub001/routers/thesisRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: config.AppConfig.MaxUploadSizeMB * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve stored thesis files
	app.Static("/uploads", config.AppConfig.UploadRoot)

	thesisRoutes.SetupThesisConclusionRoutes(app)
	thesisRoutes.SetupTestRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
