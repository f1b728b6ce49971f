package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"learnhub/config"
	adminController "learnhub/controllers/admin"
	authController "learnhub/controllers/auth"
	controllers "learnhub/controllers/course"
	"learnhub/database"
	"learnhub/middleware"
	adminRoutes "learnhub/routers/adminRoutes"
	authRoutes "learnhub/routers/authRoutes"
	courseRoutes "learnhub/routers/courseRoutes"
	"learnhub/services"
	"learnhub/token"
	"learnhub/utils"
)

func main() {
	config.LoadConfig()

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	codec := token.NewCodec(config.AppConfig.JWTKey, config.AppConfig.JWTExpiryHours)

	authSvc := services.NewAuthService(db, config.AppConfig.SaltRound)
	courseSvc := services.NewCourseService(db)
	enrollmentSvc := services.NewEnrollmentService(db)
	gradingSvc := services.NewGradingService(db)
	reviewSvc := services.NewReviewService(db)
	adminSvc := services.NewAdminService(db)

	authCtl := authController.NewController(authSvc, codec)
	courseCtl := controllers.NewController(courseSvc, enrollmentSvc, gradingSvc, reviewSvc, authSvc)
	adminCtl := adminController.NewController(adminSvc)

	protected := middleware.Protected(codec, authSvc)
	optionalAuth := middleware.OptionalAuth(codec, authSvc)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files (profile pictures, course thumbnails)
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app, authCtl, protected)
	courseRoutes.SetupCourseRoutes(app, courseCtl, protected, optionalAuth)
	adminRoutes.SetupAdminRoutes(app, adminCtl, protected)

	utils.InitializeScheduler(db, enrollmentSvc)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
