package merit

import (
	"campus360/app/config"
	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupMeritRoutes sets up the merit list routes
func SetupMeritRoutes(app *fiber.App) {
	// Group for merit list web routes with authentication middleware
	merit := app.Group("/merit-lists")
	merit.Use(auth.AuthMiddleware)

	// API routes for merit lists
	meritAPI := app.Group("/api/merit-lists")
	meritAPI.Use(auth.AuthMiddleware)

	// Web routes
	merit.Get("/", func(c *fiber.Ctx) error {
		return c.Render("merit/index", fiber.Map{
			"Title":       "Merit Lists - Campus360",
			"CurrentPage": "merit",
		})
	})

	merit.Get("/:id", func(c *fiber.Ctx) error {
		return c.Render("merit/detail", fiber.Map{
			"Title":       "Merit List - Campus360",
			"CurrentPage": "merit",
			"ListID":      c.Params("id"),
		})
	})

	// API routes
	meritAPI.Get("/", func(c *fiber.Ctx) error {
		return GetMeritListsAPI(c, config.GetDB())
	})

	meritAPI.Post("/", func(c *fiber.Ctx) error {
		return GenerateMeritListAPI(c, config.GetDB())
	})

	meritAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetMeritListAPI(c, config.GetDB())
	})

	meritAPI.Get("/:id/export", func(c *fiber.Ctx) error {
		return ExportMeritListAPI(c, config.GetDB())
	})

	meritAPI.Post("/:id/grant-all", func(c *fiber.Ctx) error {
		return GrantAllAdmissionsAPI(c, config.GetDB())
	})

	meritAPI.Post("/entries/:id/grant", func(c *fiber.Ctx) error {
		return GrantAdmissionAPI(c, config.GetDB())
	})
}
