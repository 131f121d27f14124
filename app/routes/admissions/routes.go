package admissions

import (
	"campus360/app/config"
	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAdmissionsRoutes sets up the applicant verification routes
func SetupAdmissionsRoutes(app *fiber.App) {
	admissions := app.Group("/admissions")
	admissions.Use(auth.AuthMiddleware)

	admissionsAPI := app.Group("/api/applicants")
	admissionsAPI.Use(auth.AuthMiddleware)

	// Web routes
	admissions.Get("/", func(c *fiber.Ctx) error {
		return c.Render("admissions/index", fiber.Map{
			"Title":       "Applicant Verification - Campus360",
			"CurrentPage": "admissions",
		})
	})

	// API routes
	admissionsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetApplicantsAPI(c, config.GetDB())
	})

	admissionsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetApplicantAPI(c, config.GetDB())
	})

	admissionsAPI.Post("/:id/verify", func(c *fiber.Ctx) error {
		return VerifyApplicantAPI(c, config.GetDB())
	})

	admissionsAPI.Post("/:id/payment", func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, config.GetDB())
	})
}
