package database

import (
	"testing"
	"time"

	"campus360/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryRow(applicantStatus string, securedSeats int, shift string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "merit_list_id", "applicant_id", "merit_position", "relevant_percentage", "status",
		"program_id", "session_id", "shift", "list_number", "total_seats", "secured_seats",
		"a_status",
	}).AddRow(11, 3, 42, 1, 91.5, "selected", 7, 2, shift, 1, 10, securedSeats, applicantStatus)
}

func sessionRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "start_year", "end_year", "is_active"}).
		AddRow(2, "2025-2029", 2025, 2029, true)
}

func TestGrantAdmission_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("accepted", 0, "morning"))
	mock.ExpectQuery(`SELECT id, name, start_year, end_year, is_active`).
		WithArgs(2).
		WillReturnRows(sessionRow())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applicants SET status = 'admitted'`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE merit_lists SET secured_seats = secured_seats \+ 1 WHERE id = \$1 RETURNING secured_seats`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"secured_seats"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO students`).
		WithArgs(42, 25070042, 701, "2025-GGCJ-25070042", now, "active").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE merit_list_entries SET status = 'admitted'`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// No admission fee schedule mapped: voucher issuance is skipped.
	mock.ExpectQuery(`SELECT sf\.id`).
		WithArgs("morning", 2, 7).
		WillReturnError(errNoRows())
	mock.ExpectCommit()

	result, err := GrantAdmission(db, 11, now, 50)
	require.NoError(t, err)
	require.NotNil(t, result.Student)

	assert.False(t, result.AlreadyAdmitted)
	assert.Equal(t, 25070042, result.Student.UniversityRollNo)
	assert.Equal(t, 701, result.Student.CollegeRollNo)
	assert.Equal(t, "2025-GGCJ-25070042", result.Student.RegistrationNo)
	assert.Empty(t, result.VoucherID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantAdmission_EveningRollOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("accepted", 3, "evening"))
	mock.ExpectQuery(`SELECT id, name, start_year, end_year, is_active`).
		WithArgs(2).
		WillReturnRows(sessionRow())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applicants SET status = 'admitted'`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE merit_lists SET secured_seats = secured_seats \+ 1 WHERE id = \$1 RETURNING secured_seats`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"secured_seats"}).AddRow(4))
	mock.ExpectExec(`INSERT INTO students`).
		WithArgs(42, 25070042, 754, "2025-GGCJ-25070042", now, "active").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE merit_list_entries SET status = 'admitted'`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT sf\.id`).
		WithArgs("evening", 2, 7).
		WillReturnError(errNoRows())
	mock.ExpectCommit()

	result, err := GrantAdmission(db, 11, now, 50)
	require.NoError(t, err)
	require.NotNil(t, result.Student)
	assert.Equal(t, 754, result.Student.CollegeRollNo)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantAdmission_RollSequenceFromClaimedSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	// The pre-transaction read saw zero secured seats, but other grants on
	// the same list landed first. The roll sequence must come from the
	// counter claimed inside the transaction, not the stale read.
	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("accepted", 0, "morning"))
	mock.ExpectQuery(`SELECT id, name, start_year, end_year, is_active`).
		WithArgs(2).
		WillReturnRows(sessionRow())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applicants SET status = 'admitted'`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE merit_lists SET secured_seats = secured_seats \+ 1 WHERE id = \$1 RETURNING secured_seats`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"secured_seats"}).AddRow(6))
	mock.ExpectExec(`INSERT INTO students`).
		WithArgs(42, 25070042, 706, "2025-GGCJ-25070042", now, "active").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE merit_list_entries SET status = 'admitted'`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT sf\.id`).
		WithArgs("morning", 2, 7).
		WillReturnError(errNoRows())
	mock.ExpectCommit()

	result, err := GrantAdmission(db, 11, now, 50)
	require.NoError(t, err)
	require.NotNil(t, result.Student)
	assert.Equal(t, 706, result.Student.CollegeRollNo)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantAdmission_IssuesAdmissionVoucher(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("accepted", 0, "morning"))
	mock.ExpectQuery(`SELECT id, name, start_year, end_year, is_active`).
		WithArgs(2).
		WillReturnRows(sessionRow())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applicants SET status = 'admitted'`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE merit_lists SET secured_seats = secured_seats \+ 1 WHERE id = \$1 RETURNING secured_seats`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"secured_seats"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO students`).
		WithArgs(42, 25070042, 701, "2025-GGCJ-25070042", now, "active").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE merit_list_entries SET status = 'admitted'`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT sf\.id`).
		WithArgs("morning", 2, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(88))
	mock.ExpectQuery(`SELECT id, program_id, session_id, name, number`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "program_id", "session_id", "name", "number"}).
			AddRow(13, 7, 2, "Semester 1", 1))
	mock.ExpectExec(`INSERT INTO fee_vouchers`).
		WithArgs("202608281000000042", 42, 88, 13, now.AddDate(0, 0, 14)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := GrantAdmission(db, 11, now, 50)
	require.NoError(t, err)
	assert.Equal(t, "202608281000000042", result.VoucherID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantAdmission_AlreadyAdmittedShortCircuit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("admitted", 1, "morning"))

	result, err := GrantAdmission(db, 11, time.Now(), 50)
	require.NoError(t, err)
	assert.True(t, result.AlreadyAdmitted)
	assert.Nil(t, result.Student)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantAdmission_ConcurrentGrantLosesRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT e\.id, e\.merit_list_id`).
		WithArgs(11).
		WillReturnRows(entryRow("accepted", 0, "morning"))
	mock.ExpectQuery(`SELECT id, name, start_year, end_year, is_active`).
		WithArgs(2).
		WillReturnRows(sessionRow())

	mock.ExpectBegin()
	// A concurrent grant committed first; the compare-and-swap matches
	// nothing and the transaction rolls back with no student created.
	mock.ExpectExec(`UPDATE applicants SET status = 'admitted'`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result, err := GrantAdmission(db, 11, now, 50)
	require.NoError(t, err)
	assert.True(t, result.AlreadyAdmitted)
	assert.Nil(t, result.Student)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMeritList_AssignsContinuousPositions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	list := &models.MeritList{
		ProgramID:  7,
		SessionID:  2,
		Shift:      models.MorningShift,
		ListNumber: 2,
		TotalSeats: 4,
		ValidUntil: models.CustomTime{Time: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)},
	}
	selected := []RankedCandidate{
		{Applicant: &models.Applicant{ID: 21}, Percentage: 88.0},
		{Applicant: &models.Applicant{ID: 34}, Percentage: 85.5},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO merit_lists`).
		WithArgs(7, 2, "morning", 2, 4, list.ValidUntil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))
	// Positions carry on from the earlier list: 7 and 8.
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(5, 21, 7, 88.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(5, 34, 8, 85.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(102))
	mock.ExpectCommit()

	err = CreateMeritList(db, list, selected, 7)
	require.NoError(t, err)

	assert.Equal(t, 5, list.ID)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, 7, list.Entries[0].MeritPosition)
	assert.Equal(t, 8, list.Entries[1].MeritPosition)
	assert.Equal(t, models.EntrySelected, list.Entries[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMeritList_RollsBackOnEntryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	list := &models.MeritList{
		ProgramID:  7,
		SessionID:  2,
		Shift:      models.MorningShift,
		ListNumber: 1,
		TotalSeats: 10,
		ValidUntil: models.CustomTime{Time: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)},
	}
	selected := []RankedCandidate{
		{Applicant: &models.Applicant{ID: 21}, Percentage: 88.0},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO merit_lists`).
		WithArgs(7, 2, "morning", 1, 10, list.ValidUntil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))
	mock.ExpectQuery(`INSERT INTO merit_list_entries`).
		WithArgs(5, 21, 1, 88.0).
		WillReturnError(errConstraint())
	mock.ExpectRollback()

	err = CreateMeritList(db, list, selected, 1)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAdmittedInEarlierLists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(7, "morning", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	count, err := CountAdmittedInEarlierLists(db, 7, models.MorningShift, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
