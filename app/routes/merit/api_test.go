package merit

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(db *sql.DB) *fiber.App {
	app := fiber.New()
	app.Post("/api/merit-lists", func(c *fiber.Ctx) error {
		return GenerateMeritListAPI(c, db)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func programRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "department_id", "name", "degree_type", "duration_years"}).
		AddRow(7, 1, "BS Computer Science", "BS", 4)
}

func activeSessionRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "start_year", "end_year", "is_active"}).
		AddRow(2, "2025-2029", 2025, 2029, true)
}

func meritListColumns() []string {
	return []string{"id", "program_id", "session_id", "shift", "list_number",
		"total_seats", "secured_seats", "valid_until", "is_active", "created_at"}
}

func TestGenerateMeritListAPI_ValidationErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp(db)

	status, body := postJSON(t, app, "/api/merit-lists", map[string]interface{}{
		"list_number": 1,
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])

	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	// Program, shift, validity date and seat count all missing.
	assert.Len(t, errs, 4)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateMeritListAPI_PreviousListStillValid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, department_id, name, degree_type, duration_years`).
		WithArgs(7).
		WillReturnRows(programRow())
	mock.ExpectQuery(`FROM academic_sessions`).
		WithArgs(4).
		WillReturnRows(activeSessionRow())
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// Previous list expires well in the future.
	mock.ExpectQuery(`FROM merit_lists`).
		WithArgs(7, "morning", 2, 1).
		WillReturnRows(sqlmock.NewRows(meritListColumns()).
			AddRow(3, 7, 2, "morning", 1, 10, 6,
				time.Now().AddDate(0, 1, 0), true, time.Now()))

	app := newTestApp(db)
	status, body := postJSON(t, app, "/api/merit-lists", map[string]interface{}{
		"program_id":  7,
		"shift":       "morning",
		"list_number": 2,
		"valid_until": "2030-01-31",
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])

	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "still valid")

	// Nothing was persisted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateMeritListAPI_SecondListCarriesOverSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	validUntil := time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, department_id, name, degree_type, duration_years`).
		WithArgs(7).
		WillReturnRows(programRow())
	mock.ExpectQuery(`FROM academic_sessions`).
		WithArgs(4).
		WillReturnRows(activeSessionRow())
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// List 1 filled 6 of its 10 seats and has expired: list 2 gets 4 seats.
	mock.ExpectQuery(`FROM merit_lists`).
		WithArgs(7, "morning", 2, 1).
		WillReturnRows(sqlmock.NewRows(meritListColumns()).
			AddRow(3, 7, 2, "morning", 1, 10, 6,
				time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), false, time.Now()))
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	// Six eligible applicants remain; only the top four fit the budget.
	applicantRows := sqlmock.NewRows([]string{
		"id", "full_name", "email", "cnic", "program_id", "session_id", "shift", "status", "applied_at",
	})
	marks := map[int]int{101: 875, 102: 750, 103: 625, 104: 500, 105: 375, 106: 250}
	for id := 101; id <= 106; id++ {
		applicantRows.AddRow(id, "Applicant", "a@example.com", "35202-0000000-0",
			7, 2, "morning", "accepted", time.Now())
	}
	mock.ExpectQuery(`FROM applicants a`).
		WithArgs(7, "morning", 2).
		WillReturnRows(applicantRows)

	qualRows := sqlmock.NewRows([]string{
		"id", "applicant_id", "exam_passed", "passing_year", "marks_obtained", "total_marks", "board", "institute",
	})
	for id := 101; id <= 106; id++ {
		qualRows.AddRow(id, id, "Intermediate", 2025, marks[id], 1000, "BISE Lahore", "Govt College")
	}
	mock.ExpectQuery(`FROM academic_qualifications`).
		WillReturnRows(qualRows)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO merit_lists`).
		WithArgs(7, 2, "morning", 2, 4, validUntil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, time.Now()))
	// Positions continue after the six admissions of list 1.
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(9, 101, 7, 87.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(201))
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(9, 102, 8, 75.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(202))
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(9, 103, 9, 62.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(203))
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(9, 104, 10, 50.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(204))
	mock.ExpectCommit()

	app := newTestApp(db)
	status, body := postJSON(t, app, "/api/merit-lists", map[string]interface{}{
		"program_id":  7,
		"shift":       "morning",
		"list_number": 2,
		"valid_until": "2030-01-31",
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(9), body["merit_list_id"])
	assert.Equal(t, float64(4), body["entries"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateMeritListAPI_NoSeatsLeft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, department_id, name, degree_type, duration_years`).
		WithArgs(7).
		WillReturnRows(programRow())
	mock.ExpectQuery(`FROM academic_sessions`).
		WithArgs(4).
		WillReturnRows(activeSessionRow())
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// List 1 filled every seat.
	mock.ExpectQuery(`FROM merit_lists`).
		WithArgs(7, "morning", 2, 1).
		WillReturnRows(sqlmock.NewRows(meritListColumns()).
			AddRow(3, 7, 2, "morning", 1, 10, 10,
				time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), false, time.Now()))
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	app := newTestApp(db)
	status, body := postJSON(t, app, "/api/merit-lists", map[string]interface{}{
		"program_id":  7,
		"shift":       "morning",
		"list_number": 2,
		"valid_until": "2030-01-31",
	})

	assert.Equal(t, 400, status)
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "No seats available")

	assert.NoError(t, mock.ExpectationsWereMet())
}
