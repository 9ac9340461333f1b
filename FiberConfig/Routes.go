package FiberConfig

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"TintTrack/Config"
	"TintTrack/Controllers"
	"TintTrack/Models"
	"TintTrack/Reports"
	"TintTrack/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	analyticsController := Controllers.NewAnalyticsController(db)
	reportController := Reports.NewReportController(db)

	// Auth and user management
	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/Logout", Controllers.Logout)
	app.Get("/api/validate-token", Controllers.ValidateToken)
	app.Get("/api/User", middleware.Verify(), Controllers.WhoAmI)
	app.Post("/api/RegisterUser", middleware.Verify(Models.RoleManager), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(Models.RoleManager), Controllers.FetchUsers)
	app.Patch("/api/UpdateUser", middleware.Verify(Models.RoleManager), Controllers.UpdateUser)
	app.Delete("/api/DeleteUser", middleware.Verify(Models.RoleManager), Controllers.DeleteUser)

	api := app.Group("/api")

	// Film catalog routes
	films := api.Group("/films", middleware.Verify())
	films.Get("/", Controllers.GetAllFilms)
	films.Get("/:id", Controllers.GetFilm)
	films.Post("/", middleware.Verify(Models.RoleManager), Controllers.CreateFilm)
	films.Put("/:id", middleware.Verify(Models.RoleManager), Controllers.UpdateFilm)
	films.Put("/:id/deactivate", middleware.Verify(Models.RoleManager), Controllers.DeactivateFilm)
	films.Put("/:id/reactivate", middleware.Verify(Models.RoleManager), Controllers.ReactivateFilm)

	// Inventory ledger routes under films
	films.Get("/:id/transactions", middleware.Verify(Models.RoleDataEntry), Controllers.GetFilmTransactions)
	films.Post("/:id/transactions", middleware.Verify(Models.RoleDataEntry), Controllers.ApplyTransaction)
	api.Get("/inventory/low-stock", middleware.Verify(Models.RoleDataEntry), Controllers.GetLowStock)

	// Job routes
	jobs := api.Group("/jobs", middleware.Verify())
	jobs.Get("/", Controllers.GetAllJobs)
	jobs.Get("/:id", Controllers.GetJob)
	jobs.Post("/", middleware.Verify(Models.RoleDataEntry), Controllers.CreateJob)
	jobs.Put("/:id", middleware.Verify(Models.RoleDataEntry), Controllers.UpdateJob)
	jobs.Delete("/:id", middleware.Verify(Models.RoleManager), Controllers.DeleteJob)
	jobs.Post("/:id/redos", middleware.Verify(Models.RoleDataEntry), Controllers.AddRedo)
	jobs.Delete("/:id/redos/:redoId", middleware.Verify(Models.RoleDataEntry), Controllers.DeleteRedo)
	jobs.Post("/:id/time-entries", middleware.Verify(Models.RoleDataEntry), Controllers.AddTimeEntry)
	jobs.Post("/:id/photos", middleware.Verify(Models.RoleDataEntry), Controllers.UploadJobPhoto)

	// Analytics routes
	analytics := api.Group("/analytics", middleware.Verify(Models.RoleManager))
	analytics.Get("/dashboard", analyticsController.Dashboard)
	analytics.Get("/time-performance", analyticsController.TimePerformance)
	analytics.Get("/jobs/:id/costs", analyticsController.JobCosts)
	analytics.Get("/export/job-costs", reportController.JobCostReport)

	// Installers can read their own numbers without the manager gate.
	api.Get("/my/performance", middleware.Verify(), analyticsController.MyPerformance)

	// Logs API routes
	app.Get("/api/logs", middleware.Verify(Models.RoleManager), Controllers.GetLogs)
	app.Get("/api/logs/stats", middleware.Verify(Models.RoleManager), Controllers.GetLogStats)
}

func FiberConfig(cfg *Config.Config) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	// Serve job photos
	app.Static("/JobPhotos", Controllers.PhotoDir, fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	app.Listen(cfg.Address)
}
