package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CustomTime allows parsing dates in YYYY-MM-DD format
type CustomTime struct {
	time.Time
}

// UnmarshalJSON parses dates in YYYY-MM-DD format
func (ct *CustomTime) UnmarshalJSON(data []byte) error {
	// Handle null or empty
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		ct.Time = time.Time{}
		return nil
	}

	// Remove quotes
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}

	ct.Time = t
	return nil
}

// MarshalJSON formats dates in YYYY-MM-DD format
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, ct.Time.Format("2006-01-02"))), nil
}

// Scan implements the Scanner interface for database reading
func (ct *CustomTime) Scan(value interface{}) error {
	if value == nil {
		ct.Time = time.Time{}
		return nil
	}

	if t, ok := value.(time.Time); ok {
		ct.Time = t
		return nil
	}

	return fmt.Errorf("cannot scan %T into CustomTime", value)
}

// Value implements the Valuer interface for database writing
func (ct CustomTime) Value() (driver.Value, error) {
	return ct.Time, nil
}

// DatePassed reports whether now's calendar date is strictly after date's.
// Deadline columns are DATEs and scan as midnight, so comparing the raw
// time.Time against a wall clock would mark them passed a day early.
func DatePassed(date, now time.Time) bool {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()
	if ny != dy {
		return ny > dy
	}
	if nm != dm {
		return nm > dm
	}
	return nd > dd
}

// Faculty represents a faculty of the university, e.g. Faculty of Science.
type Faculty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Department belongs to a faculty, e.g. Computer Science (CS).
type Department struct {
	ID        int    `json:"id"`
	FacultyID int    `json:"faculty_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`

	Faculty *Faculty `json:"faculty,omitempty"`
}

// Program is a degree program offered by a department, e.g. BS Computer Science.
type Program struct {
	ID            int    `json:"id"`
	DepartmentID  int    `json:"department_id"`
	Name          string `json:"name"`
	DegreeType    string `json:"degree_type"`
	DurationYears int    `json:"duration_years"`

	Department *Department `json:"department,omitempty"`
}

// AcademicSession is an admission cycle span, e.g. 2025-2029.
type AcademicSession struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	IsActive  bool   `json:"is_active"`
}

// DurationYears returns the span of the session in years.
func (s *AcademicSession) DurationYears() int {
	return s.EndYear - s.StartYear
}

// Semester represents one semester of a program within a session.
type Semester struct {
	ID        int    `json:"id"`
	ProgramID int    `json:"program_id"`
	SessionID int    `json:"session_id"`
	Name      string `json:"name"`
	Number    int    `json:"number"`

	Program *Program         `json:"program,omitempty"`
	Session *AcademicSession `json:"session,omitempty"`
}
