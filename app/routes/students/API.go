package students

import (
	"database/sql"
	"fmt"
	"log"

	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// GetStudentsAPI returns admitted students with optional program/status
// filtering.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	programID := c.QueryInt("program_id")
	status := c.Query("status")

	baseQuery := `
		SELECT s.applicant_id, s.university_roll_no, s.college_roll_no, s.registration_no,
			   s.enrollment_date, s.current_status,
			   a.full_name, a.cnic, a.shift, a.program_id, a.session_id,
			   p.name
		FROM students s
		JOIN applicants a ON a.id = s.applicant_id
		JOIN programs p ON p.id = a.program_id
		WHERE 1=1`

	var args []interface{}
	argIndex := 1
	if programID > 0 {
		baseQuery += fmt.Sprintf(" AND a.program_id = $%d", argIndex)
		args = append(args, programID)
		argIndex++
	}
	if status != "" {
		baseQuery += fmt.Sprintf(" AND s.current_status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	baseQuery += " ORDER BY s.university_roll_no"

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}
	defer rows.Close()

	type studentRow struct {
		*models.Student
		FullName    string       `json:"full_name"`
		CNIC        string       `json:"cnic"`
		Shift       models.Shift `json:"shift"`
		ProgramID   int          `json:"program_id"`
		SessionID   int          `json:"session_id"`
		ProgramName string       `json:"program_name"`
	}

	var students []*studentRow
	for rows.Next() {
		s := &studentRow{Student: &models.Student{}}
		err := rows.Scan(
			&s.ApplicantID, &s.UniversityRollNo, &s.CollegeRollNo, &s.RegistrationNo,
			&s.EnrollmentDate, &s.CurrentStatus,
			&s.FullName, &s.CNIC, &s.Shift, &s.ProgramID, &s.SessionID,
			&s.ProgramName,
		)
		if err != nil {
			continue
		}
		students = append(students, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": students})
}

// GetStudentAPI returns one student with semester enrollments.
func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	s := &models.Student{Applicant: &models.Applicant{}}
	query := `
		SELECT s.applicant_id, s.university_roll_no, s.college_roll_no, s.registration_no,
			   s.enrollment_date, s.current_status,
			   a.full_name, a.cnic, a.shift, a.program_id, a.session_id, a.status
		FROM students s
		JOIN applicants a ON a.id = s.applicant_id
		WHERE s.applicant_id = $1`
	err = db.QueryRow(query, studentID).Scan(
		&s.ApplicantID, &s.UniversityRollNo, &s.CollegeRollNo, &s.RegistrationNo,
		&s.EnrollmentDate, &s.CurrentStatus,
		&s.Applicant.FullName, &s.Applicant.CNIC, &s.Applicant.Shift,
		&s.Applicant.ProgramID, &s.Applicant.SessionID, &s.Applicant.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	s.Applicant.ID = s.ApplicantID

	rows, err := db.Query(`
		SELECT e.id, e.student_id, e.semester_id, e.status, e.enrolled_at,
			   sem.name, sem.number
		FROM student_semester_enrollments e
		JOIN semesters sem ON sem.id = e.semester_id
		WHERE e.student_id = $1
		ORDER BY sem.number`, s.ApplicantID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}
	defer rows.Close()

	var enrollments []*models.StudentSemesterEnrollment
	for rows.Next() {
		e := &models.StudentSemesterEnrollment{Semester: &models.Semester{}}
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.SemesterID, &e.Status, &e.EnrolledAt,
			&e.Semester.Name, &e.Semester.Number,
		)
		if err != nil {
			continue
		}
		e.Semester.ID = e.SemesterID
		enrollments = append(enrollments, e)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"student":     s,
			"enrollments": enrollments,
		},
	})
}

// EnrollStudentAPI enrolls a student into a semester. Duplicate enrollments
// for the same semester are rejected.
func EnrollStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var req struct {
		SemesterID int `json:"semester_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SemesterID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"Semester is required."}})
	}

	enrollment := &models.StudentSemesterEnrollment{
		StudentID:  studentID,
		SemesterID: req.SemesterID,
		Status:     models.EnrollmentEnrolled,
	}
	err = db.QueryRow(
		`INSERT INTO student_semester_enrollments (student_id, semester_id, status)
		 VALUES ($1, $2, 'enrolled') RETURNING id, enrolled_at`,
		enrollment.StudentID, enrollment.SemesterID,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(400).JSON(fiber.Map{"success": false,
				"errors": []string{"Student is already enrolled in this semester."}})
		}
		log.Printf("Failed to enroll student %d: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll student")
	}

	return c.JSON(fiber.Map{"success": true, "data": enrollment})
}

// UpdateEnrollmentStatusAPI moves an enrollment to completed or dropped.
func UpdateEnrollmentStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	enrollmentID, err := c.ParamsInt("enrollmentID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	newStatus := models.EnrollmentStatus(req.Status)
	if newStatus != models.EnrollmentCompleted && newStatus != models.EnrollmentDropped && newStatus != models.EnrollmentEnrolled {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"Status must be enrolled, completed or dropped."}})
	}

	res, err := db.Exec(
		`UPDATE student_semester_enrollments SET status = $1 WHERE id = $2`,
		string(newStatus), enrollmentID,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update enrollment")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
