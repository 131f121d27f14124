package fees

import (
	"database/sql"
	"log"
	"time"

	"campus360/app/database"
	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
)

// loadVoucherWithTotal fetches a voucher and computes its payable breakdown
// for today.
func loadVoucherWithTotal(db *sql.DB, voucherID string) (*models.FeeVoucher, *VoucherTotal, error) {
	voucher, err := database.GetVoucherByVoucherID(db, voucherID)
	if err != nil {
		return nil, nil, err
	}

	active, err := database.HasActiveEnrollment(db, voucher.StudentID, voucher.SemesterID)
	if err != nil {
		return nil, nil, err
	}

	total := ComputeVoucherTotal(
		voucher.SemesterFee.DynamicFees,
		voucher.SemesterFee.TotalAmount,
		voucher.DueDate.Time,
		time.Now(),
		active,
	)
	return voucher, &total, nil
}

// GenerateVoucherAPI issues a voucher for a (student, semester fee, semester)
// triple with a due date.
func GenerateVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		StudentID     int               `json:"student_id"`
		SemesterFeeID int               `json:"semester_fee_id"`
		SemesterID    int               `json:"semester_id"`
		DueDate       models.CustomTime `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var errors []string
	if req.StudentID <= 0 {
		errors = append(errors, "Student is required.")
	}
	if req.SemesterFeeID <= 0 {
		errors = append(errors, "Semester fee is required.")
	}
	if req.SemesterID <= 0 {
		errors = append(errors, "Semester is required.")
	}
	if req.DueDate.Time.IsZero() {
		errors = append(errors, "Due date is required.")
	}
	if len(errors) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": errors})
	}

	voucher := &models.FeeVoucher{
		StudentID:     req.StudentID,
		SemesterFeeID: req.SemesterFeeID,
		SemesterID:    req.SemesterID,
		DueDate:       req.DueDate,
	}
	if err := database.CreateVoucher(db, voucher, time.Now()); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": []string{err.Error()}})
	}

	return c.JSON(fiber.Map{"success": true, "data": voucher})
}

// GetVoucherAPI returns a voucher with its computed fee breakdown.
func GetVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	voucher, total, err := loadVoucherWithTotal(db, c.Params("voucherID"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
		}
		log.Printf("Failed to load voucher: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch voucher")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"voucher":    voucher,
			"components": total.Components,
			"total":      total.Total,
		},
	})
}

// PrintVoucherPage renders a printable voucher with the computed breakdown.
func PrintVoucherPage(c *fiber.Ctx, db *sql.DB) error {
	voucher, total, err := loadVoucherWithTotal(db, c.Params("voucherID"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
		}
		log.Printf("Failed to load voucher: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch voucher")
	}

	return c.Render("fees/voucher_print", fiber.Map{
		"Title":      "Fee Voucher - Campus360",
		"Voucher":    voucher,
		"Student":    voucher.Student,
		"Components": total.Components,
		"Total":      total.Total,
	}, "")
}

// VerifyVoucherAPI confirms an over-the-counter payment: the computed total
// (including any surcharge in force today) is recorded as a StudentFeePayment
// and the voucher flips to paid. There is no reverse operation.
func VerifyVoucherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Remarks string `json:"remarks"`
	}
	// Body is optional
	_ = c.BodyParser(&req)

	voucher, total, err := loadVoucherWithTotal(db, c.Params("voucherID"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
		}
		log.Printf("Failed to load voucher: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch voucher")
	}

	payment, err := database.VerifyVoucherPayment(db, voucher, total.Total, req.Remarks, time.Now())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": []string{err.Error()}})
	}

	log.Printf("Voucher %s verified: receipt %s for %.2f", voucher.VoucherID, payment.ReceiptNumber, payment.AmountPaid)

	return c.JSON(fiber.Map{
		"success":        true,
		"receipt_number": payment.ReceiptNumber,
		"amount_paid":    payment.AmountPaid,
	})
}

// GetStudentVouchersAPI lists a student's vouchers.
func GetStudentVouchersAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID, err := c.ParamsInt("studentID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	vouchers, err := database.ListVouchersForStudent(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch vouchers")
	}

	return c.JSON(fiber.Map{"success": true, "data": vouchers})
}
