package admissions

import (
	"database/sql"
	"fmt"
	"log"

	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetApplicantsAPI returns applicants with optional status/program/shift
// filtering and their payment status attached.
func GetApplicantsAPI(c *fiber.Ctx, db *sql.DB) error {
	status := c.Query("status")
	programID := c.QueryInt("program_id")
	shift := c.Query("shift")

	baseQuery := `
		SELECT a.id, a.full_name, a.email, a.cnic, a.contact_no, a.father_name,
			   a.program_id, a.session_id, a.shift, a.status, a.applied_at,
			   p.name, COALESCE(pay.status, 'pending')
		FROM applicants a
		JOIN programs p ON p.id = a.program_id
		LEFT JOIN applicant_payments pay ON pay.applicant_id = a.id
		WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if status != "" {
		baseQuery += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	if programID > 0 {
		baseQuery += fmt.Sprintf(" AND a.program_id = $%d", argIndex)
		args = append(args, programID)
		argIndex++
	}
	if shift != "" {
		baseQuery += fmt.Sprintf(" AND a.shift = $%d", argIndex)
		args = append(args, shift)
		argIndex++
	}

	baseQuery += " ORDER BY a.applied_at DESC"

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch applicants")
	}
	defer rows.Close()

	type applicantRow struct {
		*models.Applicant
		ProgramName   string               `json:"program_name"`
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}

	var applicants []*applicantRow
	for rows.Next() {
		a := &applicantRow{Applicant: &models.Applicant{}}
		err := rows.Scan(
			&a.ID, &a.FullName, &a.Email, &a.CNIC, &a.ContactNo, &a.FatherName,
			&a.ProgramID, &a.SessionID, &a.Shift, &a.Status, &a.AppliedAt,
			&a.ProgramName, &a.PaymentStatus,
		)
		if err != nil {
			continue
		}
		applicants = append(applicants, a)
	}

	return c.JSON(fiber.Map{"success": true, "data": applicants})
}

// GetApplicantAPI returns one applicant with qualifications and payment.
func GetApplicantAPI(c *fiber.Ctx, db *sql.DB) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid applicant id")
	}

	a := &models.Applicant{}
	query := `SELECT id, full_name, email, cnic, contact_no, father_name,
					 program_id, session_id, shift, status, applied_at
			  FROM applicants WHERE id = $1`
	err = db.QueryRow(query, applicantID).Scan(
		&a.ID, &a.FullName, &a.Email, &a.CNIC, &a.ContactNo, &a.FatherName,
		&a.ProgramID, &a.SessionID, &a.Shift, &a.Status, &a.AppliedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Applicant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch applicant")
	}

	qualRows, err := db.Query(
		`SELECT id, applicant_id, exam_passed, passing_year, marks_obtained, total_marks, board, institute
		 FROM academic_qualifications WHERE applicant_id = $1 ORDER BY passing_year DESC`,
		a.ID,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch qualifications")
	}
	defer qualRows.Close()

	for qualRows.Next() {
		q := &models.AcademicQualification{}
		err := qualRows.Scan(
			&q.ID, &q.ApplicantID, &q.ExamPassed, &q.PassingYear,
			&q.MarksObtained, &q.TotalMarks, &q.Board, &q.Institute,
		)
		if err != nil {
			continue
		}
		a.Qualifications = append(a.Qualifications, q)
	}

	payment := &models.ApplicantPayment{}
	err = db.QueryRow(
		`SELECT id, applicant_id, amount, status, created_at FROM applicant_payments WHERE applicant_id = $1`,
		a.ID,
	).Scan(&payment.ID, &payment.ApplicantID, &payment.Amount, &payment.Status, &payment.CreatedAt)
	if err == nil {
		a.Payment = payment
	} else if err != sql.ErrNoRows {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}

	return c.JSON(fiber.Map{"success": true, "data": a})
}

// VerifyApplicantAPI accepts or rejects a pending application. Admitted
// applicants can no longer be verified.
func VerifyApplicantAPI(c *fiber.Ctx, db *sql.DB) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid applicant id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	newStatus := models.ApplicantStatus(req.Status)
	if newStatus != models.ApplicantAccepted && newStatus != models.ApplicantRejected {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"Status must be accepted or rejected."}})
	}

	res, err := db.Exec(
		`UPDATE applicants SET status = $1 WHERE id = $2 AND status <> 'admitted'`,
		string(newStatus), applicantID,
	)
	if err != nil {
		log.Printf("Failed to verify applicant %d: %v", applicantID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update applicant")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"Applicant not found or already admitted."}})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RecordPaymentAPI marks an applicant's admission processing payment.
// A paid payment gates merit list eligibility.
func RecordPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid applicant id")
	}

	var req struct {
		Amount float64 `json:"amount"`
		Status string  `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	paymentStatus := models.PaymentStatus(req.Status)
	if paymentStatus != models.PaymentPaid && paymentStatus != models.PaymentFailed && paymentStatus != models.PaymentPending {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"Status must be pending, paid or failed."}})
	}

	_, err = db.Exec(`
		INSERT INTO applicant_payments (applicant_id, amount, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (applicant_id) DO UPDATE SET amount = $2, status = $3`,
		applicantID, req.Amount, string(paymentStatus),
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.JSON(fiber.Map{"success": true})
}
