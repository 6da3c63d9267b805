package main

import (
	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	certRoutes "lms/routers/certRoutes"
	courseRoutes "lms/routers/courseRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded certificate files
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	certRoutes.SetupCertificateRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeReviewScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
