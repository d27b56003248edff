package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/vivacare/clinic-backend/cron"
	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/redis"
	"github.com/vivacare/clinic-backend/routes"
	"github.com/vivacare/clinic-backend/utils"
)

func main() {
	utils.InitLogger()
	log := utils.GetLogger()
	defer log.Sync()

	db.Init()
	db.Migrate()
	db.Seed()
	redis.InitRedis()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	routes.SetupAuthRoutes(api)
	routes.SetupPublicRoutes(api)
	routes.SetupAppointmentRoutes(api)
	routes.SetupAdminRoutes(api)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Info("starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
