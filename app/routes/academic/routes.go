package academic

import (
	"database/sql"

	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes sets up the academic structure routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/academic")
	api.Use(auth.AuthMiddleware)

	api.Get("/faculties", func(c *fiber.Ctx) error {
		return GetFacultiesAPI(c, db)
	})

	api.Get("/programs", func(c *fiber.Ctx) error {
		return GetProgramsAPI(c, db)
	})

	api.Get("/sessions", func(c *fiber.Ctx) error {
		return GetSessionsAPI(c, db)
	})

	api.Post("/sessions", func(c *fiber.Ctx) error {
		return CreateSessionAPI(c, db)
	})

	api.Get("/semesters", func(c *fiber.Ctx) error {
		return GetSemestersAPI(c, db)
	})
}
