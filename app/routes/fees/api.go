package fees

import (
	"database/sql"
	"log"

	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// GetFeeTypesAPI returns all fee types
func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, name, description, is_active FROM fee_types ORDER BY name`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee types")
	}
	defer rows.Close()

	var feeTypes []*models.FeeType
	for rows.Next() {
		ft := &models.FeeType{}
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Description, &ft.IsActive); err != nil {
			continue
		}
		feeTypes = append(feeTypes, ft)
	}

	return c.JSON(fiber.Map{"success": true, "data": feeTypes})
}

// CreateFeeTypeAPI creates a new fee type
func CreateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var errors []string
	if req.Name == "" {
		errors = append(errors, "Name is required.")
	}
	if len(errors) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": errors})
	}

	ft := &models.FeeType{Name: req.Name, Description: req.Description, IsActive: req.IsActive}
	err := db.QueryRow(
		`INSERT INTO fee_types (name, description, is_active) VALUES ($1, $2, $3) RETURNING id`,
		ft.Name, ft.Description, ft.IsActive,
	).Scan(&ft.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(400).JSON(fiber.Map{"success": false,
				"errors": []string{"Fee type with this name already exists."}})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee type")
	}

	return c.JSON(fiber.Map{"success": true, "data": ft})
}

// SemesterFeeRequest is the payload for creating or updating a fee schedule.
type SemesterFeeRequest struct {
	FeeTypeID   int                  `json:"fee_type_id"`
	Shift       string               `json:"shift"`
	DynamicFees models.FeeComponents `json:"dynamic_fees"`
	IsActive    bool                 `json:"is_active"`
	SessionID   int                  `json:"session_id"`
	ProgramIDs  []int                `json:"program_ids"`
	SemesterIDs []int                `json:"semester_ids"`
}

func validateSemesterFeeRequest(req *SemesterFeeRequest) []string {
	var errors []string
	if req.FeeTypeID <= 0 {
		errors = append(errors, "Fee Type is required.")
	}
	if !models.ValidShift(req.Shift) {
		errors = append(errors, "Shift must be morning or evening.")
	}
	if len(req.DynamicFees) == 0 {
		errors = append(errors, "At least one fee head is required.")
	}
	for _, comp := range req.DynamicFees {
		if comp.Name == "" {
			errors = append(errors, "Every fee head needs a name.")
			break
		}
		if comp.Amount <= 0 {
			errors = append(errors, "Every fee head amount must be greater than 0.")
			break
		}
	}
	if req.SessionID <= 0 {
		errors = append(errors, "Academic Session is required.")
	}
	if len(req.ProgramIDs) == 0 {
		errors = append(errors, "At least one Program is required.")
	}
	if len(req.SemesterIDs) == 0 {
		errors = append(errors, "At least one Semester is required.")
	}
	return errors
}

// CreateSemesterFeeAPI creates a fee schedule with its dynamic fee heads and
// program/semester mapping. The stored total is the sum of the heads; late
// surcharges are never stored.
func CreateSemesterFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req SemesterFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errors := validateSemesterFeeRequest(&req); len(errors) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": errors})
	}

	fee := &models.SemesterFee{
		FeeTypeID:   req.FeeTypeID,
		Shift:       models.Shift(req.Shift),
		DynamicFees: req.DynamicFees,
		TotalAmount: req.DynamicFees.Total(),
		IsActive:    req.IsActive,
	}

	tx, err := db.Begin()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start transaction")
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO semester_fees (fee_type_id, shift, dynamic_fees, total_amount, is_active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		fee.FeeTypeID, string(fee.Shift), fee.DynamicFees, fee.TotalAmount, fee.IsActive,
	).Scan(&fee.ID)
	if err != nil {
		log.Printf("Failed to insert semester fee: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create semester fee")
	}

	var ftpID int
	err = tx.QueryRow(
		`INSERT INTO fee_to_programs (semester_fee_id, session_id) VALUES ($1, $2) RETURNING id`,
		fee.ID, req.SessionID,
	).Scan(&ftpID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to map fee to session")
	}
	for _, programID := range req.ProgramIDs {
		if _, err := tx.Exec(
			`INSERT INTO fee_to_program_programs (fee_to_program_id, program_id) VALUES ($1, $2)`,
			ftpID, programID,
		); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to map fee to programs")
		}
	}
	for _, semesterID := range req.SemesterIDs {
		if _, err := tx.Exec(
			`INSERT INTO fee_to_program_semesters (fee_to_program_id, semester_id) VALUES ($1, $2)`,
			ftpID, semesterID,
		); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to map fee to semesters")
		}
	}

	if err := tx.Commit(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create semester fee")
	}

	return c.JSON(fiber.Map{"success": true, "data": fee})
}

// GetSemesterFeesAPI returns all fee schedules with their fee type names.
func GetSemesterFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT sf.id, sf.fee_type_id, sf.shift, sf.dynamic_fees, sf.total_amount, sf.is_active,
			   ft.name, ft.description, ft.is_active
		FROM semester_fees sf
		JOIN fee_types ft ON ft.id = sf.fee_type_id
		ORDER BY ft.name, sf.shift`

	rows, err := db.Query(query)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch semester fees")
	}
	defer rows.Close()

	var fees []*models.SemesterFee
	for rows.Next() {
		fee := &models.SemesterFee{FeeType: &models.FeeType{}}
		err := rows.Scan(
			&fee.ID, &fee.FeeTypeID, &fee.Shift, &fee.DynamicFees,
			&fee.TotalAmount, &fee.IsActive,
			&fee.FeeType.Name, &fee.FeeType.Description, &fee.FeeType.IsActive,
		)
		if err != nil {
			continue
		}
		fee.FeeType.ID = fee.FeeTypeID
		fees = append(fees, fee)
	}

	return c.JSON(fiber.Map{"success": true, "data": fees})
}

// UpdateSemesterFeeAPI replaces a fee schedule's heads and activation flag.
func UpdateSemesterFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid semester fee id")
	}

	var req struct {
		DynamicFees models.FeeComponents `json:"dynamic_fees"`
		IsActive    bool                 `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.DynamicFees) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"At least one fee head is required."}})
	}

	res, err := db.Exec(
		`UPDATE semester_fees SET dynamic_fees = $1, total_amount = $2, is_active = $3 WHERE id = $4`,
		req.DynamicFees, req.DynamicFees.Total(), req.IsActive, feeID,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update semester fee")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Semester fee not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
