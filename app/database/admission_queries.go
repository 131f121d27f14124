package database

import (
	"database/sql"
	"fmt"
	"time"

	"campus360/app/models"

	"github.com/lib/pq"
)

// RankedCandidate pairs an eligible applicant with the percentage used to
// rank them.
type RankedCandidate struct {
	Applicant  *models.Applicant
	Percentage float64
}

// EligibleCandidates returns applicants who can appear on the next merit
// list of (program, shift, session): status accepted, admission processing
// payment paid, and not already placed on an earlier list. Qualifications
// are loaded so the caller can score them.
func EligibleCandidates(db *sql.DB, programID int, shift models.Shift, sessionID int) ([]*models.Applicant, error) {
	query := `
		SELECT a.id, a.full_name, a.email, a.cnic, a.program_id, a.session_id, a.shift, a.status, a.applied_at
		FROM applicants a
		JOIN applicant_payments p ON p.applicant_id = a.id AND p.status = 'paid'
		WHERE a.status = 'accepted'
		  AND a.program_id = $1
		  AND a.shift = $2
		  AND a.session_id = $3
		  AND NOT EXISTS (
			SELECT 1
			FROM merit_list_entries e
			JOIN merit_lists m ON m.id = e.merit_list_id
			WHERE e.applicant_id = a.id
			  AND m.program_id = $1
			  AND m.shift = $2
			  AND m.session_id = $3
		  )
		ORDER BY a.id`

	rows, err := db.Query(query, programID, string(shift), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligible applicants: %v", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	byID := make(map[int]*models.Applicant)
	for rows.Next() {
		a := &models.Applicant{}
		err := rows.Scan(
			&a.ID, &a.FullName, &a.Email, &a.CNIC,
			&a.ProgramID, &a.SessionID, &a.Shift, &a.Status, &a.AppliedAt,
		)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(applicants) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(applicants))
	for _, a := range applicants {
		ids = append(ids, int64(a.ID))
	}

	qualQuery := `
		SELECT id, applicant_id, exam_passed, passing_year, marks_obtained, total_marks, board, institute
		FROM academic_qualifications
		WHERE applicant_id = ANY($1)
		ORDER BY applicant_id, passing_year`
	qualRows, err := db.Query(qualQuery, pq.Int64Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualifications: %v", err)
	}
	defer qualRows.Close()

	for qualRows.Next() {
		q := &models.AcademicQualification{}
		err := qualRows.Scan(
			&q.ID, &q.ApplicantID, &q.ExamPassed, &q.PassingYear,
			&q.MarksObtained, &q.TotalMarks, &q.Board, &q.Institute,
		)
		if err != nil {
			return nil, err
		}
		if a, ok := byID[q.ApplicantID]; ok {
			a.Qualifications = append(a.Qualifications, q)
		}
	}
	return applicants, qualRows.Err()
}

// MeritListExists reports whether a list with this number already exists for
// the (program, shift, session) cycle.
func MeritListExists(db *sql.DB, programID int, shift models.Shift, sessionID, listNumber int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM merit_lists
		WHERE program_id = $1 AND shift = $2 AND session_id = $3 AND list_number = $4
	)`
	err := db.QueryRow(query, programID, string(shift), sessionID, listNumber).Scan(&exists)
	return exists, err
}

// GetMeritListByNumber fetches one list of a cycle by its sequence number.
func GetMeritListByNumber(db *sql.DB, programID int, shift models.Shift, sessionID, listNumber int) (*models.MeritList, error) {
	m := &models.MeritList{}
	query := `SELECT id, program_id, session_id, shift, list_number, total_seats, secured_seats, valid_until, is_active, created_at
			  FROM merit_lists
			  WHERE program_id = $1 AND shift = $2 AND session_id = $3 AND list_number = $4`
	err := db.QueryRow(query, programID, string(shift), sessionID, listNumber).Scan(
		&m.ID, &m.ProgramID, &m.SessionID, &m.Shift, &m.ListNumber,
		&m.TotalSeats, &m.SecuredSeats, &m.ValidUntil, &m.IsActive, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CountAdmittedInEarlierLists counts admissions granted via lists numbered
// below listNumber for one cycle. Merit positions run continuously across
// the chained lists, so this count is the next list's position offset.
func CountAdmittedInEarlierLists(db *sql.DB, programID int, shift models.Shift, sessionID, listNumber int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM merit_list_entries e
		JOIN merit_lists m ON m.id = e.merit_list_id
		WHERE m.program_id = $1 AND m.shift = $2 AND m.session_id = $3
		  AND m.list_number < $4
		  AND e.status = 'admitted'`
	err := db.QueryRow(query, programID, string(shift), sessionID, listNumber).Scan(&count)
	return count, err
}

// CreateMeritList persists a merit list and its ranked entries as one
// atomic unit. Entries receive positions startPosition, startPosition+1, ...
// in the order given. On any failure nothing is persisted.
func CreateMeritList(db *sql.DB, list *models.MeritList, selected []RankedCandidate, startPosition int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryList := `INSERT INTO merit_lists (program_id, session_id, shift, list_number, total_seats, secured_seats, valid_until, is_active)
				  VALUES ($1, $2, $3, $4, $5, 0, $6, true)
				  RETURNING id, created_at`
	err = tx.QueryRow(queryList,
		list.ProgramID, list.SessionID, string(list.Shift),
		list.ListNumber, list.TotalSeats, list.ValidUntil,
	).Scan(&list.ID, &list.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert merit list: %v", err)
	}

	queryEntry := `INSERT INTO merit_list_entries (merit_list_id, applicant_id, merit_position, relevant_percentage, status)
				   VALUES ($1, $2, $3, $4, 'selected')
				   RETURNING id`
	for i, cand := range selected {
		entry := &models.MeritListEntry{
			MeritListID:        list.ID,
			ApplicantID:        cand.Applicant.ID,
			MeritPosition:      startPosition + i,
			RelevantPercentage: cand.Percentage,
			Status:             models.EntrySelected,
		}
		err = tx.QueryRow(queryEntry,
			entry.MeritListID, entry.ApplicantID, entry.MeritPosition, entry.RelevantPercentage,
		).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to insert merit list entry: %v", err)
		}
		entry.Applicant = cand.Applicant
		list.Entries = append(list.Entries, entry)
	}

	return tx.Commit()
}

// GetMeritList fetches a merit list by id.
func GetMeritList(db *sql.DB, listID int) (*models.MeritList, error) {
	m := &models.MeritList{}
	query := `SELECT id, program_id, session_id, shift, list_number, total_seats, secured_seats, valid_until, is_active, created_at
			  FROM merit_lists WHERE id = $1`
	err := db.QueryRow(query, listID).Scan(
		&m.ID, &m.ProgramID, &m.SessionID, &m.Shift, &m.ListNumber,
		&m.TotalSeats, &m.SecuredSeats, &m.ValidUntil, &m.IsActive, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeactivateExpiredMeritList flips is_active off when the validity window has
// passed. Reads call this lazily so stale lists never show as active.
func DeactivateExpiredMeritList(db *sql.DB, list *models.MeritList) error {
	if !list.IsActive || !list.Expired(time.Now()) {
		return nil
	}
	_, err := db.Exec(`UPDATE merit_lists SET is_active = false WHERE id = $1`, list.ID)
	if err != nil {
		return err
	}
	list.IsActive = false
	return nil
}

// GetMeritListEntries returns a list's entries in rank order with applicant
// names attached.
func GetMeritListEntries(db *sql.DB, listID int) ([]*models.MeritListEntry, error) {
	query := `
		SELECT e.id, e.merit_list_id, e.applicant_id, e.merit_position, e.relevant_percentage, e.status,
			   a.full_name, a.cnic, a.status
		FROM merit_list_entries e
		JOIN applicants a ON a.id = e.applicant_id
		WHERE e.merit_list_id = $1
		ORDER BY e.merit_position`

	rows, err := db.Query(query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.MeritListEntry
	for rows.Next() {
		e := &models.MeritListEntry{Applicant: &models.Applicant{}}
		err := rows.Scan(
			&e.ID, &e.MeritListID, &e.ApplicantID, &e.MeritPosition,
			&e.RelevantPercentage, &e.Status,
			&e.Applicant.FullName, &e.Applicant.CNIC, &e.Applicant.Status,
		)
		if err != nil {
			return nil, err
		}
		e.Applicant.ID = e.ApplicantID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GrantResult reports the outcome of a grant attempt.
type GrantResult struct {
	AlreadyAdmitted bool            `json:"already_admitted"`
	Student         *models.Student `json:"student,omitempty"`
	VoucherID       string          `json:"voucher_id,omitempty"`
}

// GrantAdmission promotes a merit list entry into an admitted student.
// Status flip, student creation, entry update, seat counter increment and
// the admission fee voucher all commit together or not at all.
//
// Idempotency is enforced twice: the status UPDATE only matches a row that
// is not yet 'admitted' (compare-and-swap), and the students primary key on
// applicant_id rejects a duplicate row if a concurrent grant slips past the
// first check.
func GrantAdmission(db *sql.DB, entryID int, now time.Time, eveningBlock int) (*GrantResult, error) {
	entry := &models.MeritListEntry{}
	list := &models.MeritList{}
	var applicantStatus models.ApplicantStatus
	query := `
		SELECT e.id, e.merit_list_id, e.applicant_id, e.merit_position, e.relevant_percentage, e.status,
			   m.program_id, m.session_id, m.shift, m.list_number, m.total_seats, m.secured_seats,
			   a.status
		FROM merit_list_entries e
		JOIN merit_lists m ON m.id = e.merit_list_id
		JOIN applicants a ON a.id = e.applicant_id
		WHERE e.id = $1`
	err := db.QueryRow(query, entryID).Scan(
		&entry.ID, &entry.MeritListID, &entry.ApplicantID, &entry.MeritPosition,
		&entry.RelevantPercentage, &entry.Status,
		&list.ProgramID, &list.SessionID, &list.Shift, &list.ListNumber,
		&list.TotalSeats, &list.SecuredSeats,
		&applicantStatus,
	)
	if err != nil {
		return nil, err
	}
	list.ID = entry.MeritListID

	if applicantStatus == models.ApplicantAdmitted {
		return &GrantResult{AlreadyAdmitted: true}, nil
	}

	session, err := GetSessionByID(db, list.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load academic session: %v", err)
	}

	uniRoll, err := models.UniversityRollNo(session.StartYear, list.ProgramID, entry.ApplicantID)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Compare-and-swap on the applicant status; a concurrent grant that
	// committed first leaves zero rows to update.
	res, err := tx.Exec(
		`UPDATE applicants SET status = 'admitted' WHERE id = $1 AND status <> 'admitted'`,
		entry.ApplicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update applicant status: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return &GrantResult{AlreadyAdmitted: true}, nil
	}

	// Claim the seat inside the transaction; deriving the roll sequence from
	// the returned counter keeps concurrent grants on the same list from
	// minting the same college roll number.
	var securedSeats int
	err = tx.QueryRow(
		`UPDATE merit_lists SET secured_seats = secured_seats + 1 WHERE id = $1 RETURNING secured_seats`,
		list.ID,
	).Scan(&securedSeats)
	if err != nil {
		return nil, fmt.Errorf("failed to increment secured seats: %v", err)
	}

	collegeRoll, err := models.CollegeRollNo(list.ProgramID, securedSeats-1, list.Shift, eveningBlock)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		ApplicantID:      entry.ApplicantID,
		UniversityRollNo: uniRoll,
		CollegeRollNo:    collegeRoll,
		RegistrationNo:   models.RegistrationNo(session.StartYear, uniRoll),
		EnrollmentDate:   now,
		CurrentStatus:    models.StudentActive,
	}

	_, err = tx.Exec(
		`INSERT INTO students (applicant_id, university_roll_no, college_roll_no, registration_no, enrollment_date, current_status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		student.ApplicantID, student.UniversityRollNo, student.CollegeRollNo,
		student.RegistrationNo, student.EnrollmentDate, string(student.CurrentStatus),
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &GrantResult{AlreadyAdmitted: true}, nil
		}
		return nil, fmt.Errorf("failed to create student: %v", err)
	}

	_, err = tx.Exec(`UPDATE merit_list_entries SET status = 'admitted' WHERE id = $1`, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update merit list entry: %v", err)
	}

	voucherID, err := issueAdmissionVoucher(tx, student, list, session, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &GrantResult{Student: student, VoucherID: voucherID}, nil
}

// issueAdmissionVoucher creates the admission fee voucher for a freshly
// admitted student, if an active admission fee schedule is mapped to the
// student's program and session. Missing schedule or semester is not an
// error; the office can issue the voucher manually later.
func issueAdmissionVoucher(tx *sql.Tx, student *models.Student, list *models.MeritList, session *models.AcademicSession, now time.Time) (string, error) {
	var semesterFeeID int
	query := `
		SELECT sf.id
		FROM semester_fees sf
		JOIN fee_types ft ON ft.id = sf.fee_type_id
		JOIN fee_to_programs ftp ON ftp.semester_fee_id = sf.id
		JOIN fee_to_program_programs fpp ON fpp.fee_to_program_id = ftp.id
		WHERE ft.name = 'Admission Fee' AND ft.is_active = true
		  AND sf.is_active = true AND sf.shift = $1
		  AND ftp.session_id = $2 AND fpp.program_id = $3
		LIMIT 1`
	err := tx.QueryRow(query, string(list.Shift), session.ID, list.ProgramID).Scan(&semesterFeeID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up admission fee: %v", err)
	}

	semester, err := GetFirstSemester(tx, list.ProgramID, session.ID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up first semester: %v", err)
	}

	voucherID := models.NewVoucherID(student.ApplicantID, now)
	_, err = tx.Exec(
		`INSERT INTO fee_vouchers (voucher_id, student_id, semester_fee_id, semester_id, due_date, is_paid)
		 VALUES ($1, $2, $3, $4, $5, false)`,
		voucherID, student.ApplicantID, semesterFeeID, semester.ID,
		now.AddDate(0, 0, 14),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create admission voucher: %v", err)
	}
	return voucherID, nil
}
