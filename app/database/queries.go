package database

import (
	"database/sql"

	"campus360/app/models"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, full_name, office, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.Office, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, full_name, office, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.Office, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new office staff account with a hashed password.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (email, password, full_name, office, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, user.Email, hashed, user.FullName, user.Office).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func GetProgramByID(db *sql.DB, programID int) (*models.Program, error) {
	program := &models.Program{}
	query := `SELECT id, department_id, name, degree_type, duration_years
			  FROM programs WHERE id = $1`

	err := db.QueryRow(query, programID).Scan(
		&program.ID, &program.DepartmentID, &program.Name,
		&program.DegreeType, &program.DurationYears,
	)
	if err != nil {
		return nil, err
	}
	return program, nil
}

func GetSessionByID(db *sql.DB, sessionID int) (*models.AcademicSession, error) {
	session := &models.AcademicSession{}
	query := `SELECT id, name, start_year, end_year, is_active
			  FROM academic_sessions WHERE id = $1`

	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.Name, &session.StartYear, &session.EndYear, &session.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveSessionForDuration returns the active admission session whose span
// matches the given program duration in years, e.g. a 4-year program admits
// into the active 2025-2029 session.
func GetActiveSessionForDuration(db *sql.DB, durationYears int) (*models.AcademicSession, error) {
	session := &models.AcademicSession{}
	query := `SELECT id, name, start_year, end_year, is_active
			  FROM academic_sessions
			  WHERE is_active = true AND end_year - start_year = $1
			  ORDER BY start_year DESC
			  LIMIT 1`

	err := db.QueryRow(query, durationYears).Scan(
		&session.ID, &session.Name, &session.StartYear, &session.EndYear, &session.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// rowQuerier is the single-row query surface shared by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// GetFirstSemester returns semester number 1 of a program in a session.
// Used when issuing the admission fee voucher for a freshly admitted student.
func GetFirstSemester(q rowQuerier, programID, sessionID int) (*models.Semester, error) {
	semester := &models.Semester{}
	query := `SELECT id, program_id, session_id, name, number
			  FROM semesters
			  WHERE program_id = $1 AND session_id = $2 AND number = 1`

	err := q.QueryRow(query, programID, sessionID).Scan(
		&semester.ID, &semester.ProgramID, &semester.SessionID,
		&semester.Name, &semester.Number,
	)
	if err != nil {
		return nil, err
	}
	return semester, nil
}
