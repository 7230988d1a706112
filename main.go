package main

import (
	"log"

	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	progressRoutes "lms/routers/progressRoutes"
	protectedRoutes "lms/routers/protectedRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	db := database.Connect()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, db)
	protectedRoutes.SetupProtectedRoutes(app)
	userRoutes.SetupUserRoutes(app, db)
	courseRoutes.SetupCourseRoutes(app, db)
	progressRoutes.SetupProgressRoutes(app, db)
	certificateRoutes.SetupCertificateRoutes(app, db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
