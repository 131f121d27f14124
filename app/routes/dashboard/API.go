package dashboard

import (
	"database/sql"

	"campus360/app/config"
	"campus360/app/database"
	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes registers the dashboard page and its stats API.
func SetupDashboardRoutes(app *fiber.App) {
	db := config.GetDB()

	app.Get("/dashboard", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.Render("dashboard/index", fiber.Map{
			"Title": "Dashboard - Campus360",
		}, "layouts/main")
	})

	app.Get("/api/dashboard/stats", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, db)
	})
}

// GetDashboardStatsAPI returns the headline counters for the office dashboard.
func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard stats")
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
