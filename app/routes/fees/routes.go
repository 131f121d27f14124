package fees

import (
	"campus360/app/config"
	"campus360/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes sets up the fee schedule and voucher routes
func SetupFeesRoutes(app *fiber.App) {
	// Group for fees web routes with authentication middleware
	fees := app.Group("/fees")
	fees.Use(auth.AuthMiddleware)

	// API routes for fees
	feesAPI := app.Group("/api/fees")
	feesAPI.Use(auth.AuthMiddleware)

	// Web routes
	fees.Get("/", func(c *fiber.Ctx) error {
		return c.Render("fees/index", fiber.Map{
			"Title":       "Fee Management - Campus360",
			"CurrentPage": "fees",
		})
	})

	// Fee types API
	feesAPI.Get("/types", func(c *fiber.Ctx) error {
		return GetFeeTypesAPI(c, config.GetDB())
	})

	feesAPI.Post("/types", func(c *fiber.Ctx) error {
		return CreateFeeTypeAPI(c, config.GetDB())
	})

	// Semester fee schedules API
	feesAPI.Get("/semester-fees", func(c *fiber.Ctx) error {
		return GetSemesterFeesAPI(c, config.GetDB())
	})

	feesAPI.Post("/semester-fees", func(c *fiber.Ctx) error {
		return CreateSemesterFeeAPI(c, config.GetDB())
	})

	feesAPI.Put("/semester-fees/:id", func(c *fiber.Ctx) error {
		return UpdateSemesterFeeAPI(c, config.GetDB())
	})

	// Voucher routes
	vouchers := app.Group("/vouchers")
	vouchers.Use(auth.AuthMiddleware)

	vouchersAPI := app.Group("/api/vouchers")
	vouchersAPI.Use(auth.AuthMiddleware)

	vouchers.Get("/:voucherID/print", func(c *fiber.Ctx) error {
		return PrintVoucherPage(c, config.GetDB())
	})

	vouchersAPI.Post("/", func(c *fiber.Ctx) error {
		return GenerateVoucherAPI(c, config.GetDB())
	})

	vouchersAPI.Get("/student/:studentID", func(c *fiber.Ctx) error {
		return GetStudentVouchersAPI(c, config.GetDB())
	})

	vouchersAPI.Get("/:voucherID", func(c *fiber.Ctx) error {
		return GetVoucherAPI(c, config.GetDB())
	})

	vouchersAPI.Post("/:voucherID/verify", func(c *fiber.Ctx) error {
		return VerifyVoucherAPI(c, config.GetDB())
	})
}
