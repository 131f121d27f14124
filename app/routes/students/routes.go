package students

import (
	"campus360/app/config"
	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes registers the student pages and APIs.
func SetupStudentsRoutes(app *fiber.App) {
	db := config.GetDB()

	app.Get("/students", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.Render("students/index", fiber.Map{
			"Title": "Students - Campus360",
		}, "layouts/main")
	})

	api := app.Group("/api/students", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, db)
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentAPI(c, db)
	})
	api.Post("/:id/enrollments", func(c *fiber.Ctx) error {
		return EnrollStudentAPI(c, db)
	})
	api.Patch("/enrollments/:enrollmentID", func(c *fiber.Ctx) error {
		return UpdateEnrollmentStatusAPI(c, db)
	})
}
