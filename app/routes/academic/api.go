package academic

import (
	"database/sql"

	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetFacultiesAPI returns all faculties with their departments.
func GetFacultiesAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`
		SELECT f.id, f.name, f.description, d.id, d.name, d.code
		FROM faculties f
		LEFT JOIN departments d ON d.faculty_id = f.id
		ORDER BY f.name, d.name`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch faculties")
	}
	defer rows.Close()

	type facultyRow struct {
		*models.Faculty
		Departments []*models.Department `json:"departments"`
	}

	var faculties []*facultyRow
	byID := make(map[int]*facultyRow)
	for rows.Next() {
		var (
			fID, dID     sql.NullInt64
			fName, fDesc string
			dName, dCode sql.NullString
		)
		if err := rows.Scan(&fID, &fName, &fDesc, &dID, &dName, &dCode); err != nil {
			continue
		}
		f, ok := byID[int(fID.Int64)]
		if !ok {
			f = &facultyRow{Faculty: &models.Faculty{ID: int(fID.Int64), Name: fName, Description: fDesc}}
			byID[f.ID] = f
			faculties = append(faculties, f)
		}
		if dID.Valid {
			f.Departments = append(f.Departments, &models.Department{
				ID:        int(dID.Int64),
				FacultyID: f.ID,
				Name:      dName.String,
				Code:      dCode.String,
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": faculties})
}

// GetProgramsAPI returns programs, optionally for one department.
func GetProgramsAPI(c *fiber.Ctx, db *sql.DB) error {
	departmentID := c.QueryInt("department_id")

	query := `SELECT id, department_id, name, degree_type, duration_years FROM programs`
	var rows *sql.Rows
	var err error
	if departmentID > 0 {
		rows, err = db.Query(query+` WHERE department_id = $1 ORDER BY name`, departmentID)
	} else {
		rows, err = db.Query(query + ` ORDER BY name`)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch programs")
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p := &models.Program{}
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Name, &p.DegreeType, &p.DurationYears); err != nil {
			continue
		}
		programs = append(programs, p)
	}

	return c.JSON(fiber.Map{"success": true, "data": programs})
}

// GetSessionsAPI returns academic sessions, newest first.
func GetSessionsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, name, start_year, end_year, is_active
						   FROM academic_sessions ORDER BY start_year DESC`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch sessions")
	}
	defer rows.Close()

	var sessions []*models.AcademicSession
	for rows.Next() {
		s := &models.AcademicSession{}
		if err := rows.Scan(&s.ID, &s.Name, &s.StartYear, &s.EndYear, &s.IsActive); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": sessions})
}

// CreateSessionAPI creates an academic session.
func CreateSessionAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name      string `json:"name"`
		StartYear int    `json:"start_year"`
		EndYear   int    `json:"end_year"`
		IsActive  bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var errors []string
	if req.Name == "" {
		errors = append(errors, "Name is required.")
	}
	if req.StartYear <= 0 || req.EndYear <= req.StartYear {
		errors = append(errors, "End year must be after start year.")
	}
	if len(errors) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": errors})
	}

	s := &models.AcademicSession{
		Name:      req.Name,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		IsActive:  req.IsActive,
	}
	err := db.QueryRow(
		`INSERT INTO academic_sessions (name, start_year, end_year, is_active)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		s.Name, s.StartYear, s.EndYear, s.IsActive,
	).Scan(&s.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}

	return c.JSON(fiber.Map{"success": true, "data": s})
}

// GetSemestersAPI returns semesters for a program and session.
func GetSemestersAPI(c *fiber.Ctx, db *sql.DB) error {
	programID := c.QueryInt("program_id")
	sessionID := c.QueryInt("session_id")
	if programID <= 0 || sessionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"program_id and session_id are required."}})
	}

	rows, err := db.Query(
		`SELECT id, program_id, session_id, name, number
		 FROM semesters WHERE program_id = $1 AND session_id = $2 ORDER BY number`,
		programID, sessionID,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch semesters")
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		s := &models.Semester{}
		if err := rows.Scan(&s.ID, &s.ProgramID, &s.SessionID, &s.Name, &s.Number); err != nil {
			continue
		}
		semesters = append(semesters, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": semesters})
}
