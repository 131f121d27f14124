package database

import (
	"database/sql"
	"fmt"
	"time"

	"campus360/app/models"

	"github.com/lib/pq"
)

// GetVoucherByVoucherID loads a voucher with its fee schedule, semester and
// student attached.
func GetVoucherByVoucherID(db *sql.DB, voucherID string) (*models.FeeVoucher, error) {
	v := &models.FeeVoucher{
		Student:     &models.Student{Applicant: &models.Applicant{}},
		SemesterFee: &models.SemesterFee{FeeType: &models.FeeType{}},
		Semester:    &models.Semester{},
	}
	query := `
		SELECT v.id, v.voucher_id, v.student_id, v.semester_fee_id, v.semester_id,
			   v.due_date, v.generated_at, v.is_paid, v.paid_at, v.payment_id,
			   s.university_roll_no, s.college_roll_no, s.registration_no, s.current_status,
			   a.full_name, a.shift,
			   sf.shift, sf.dynamic_fees, sf.total_amount, sf.is_active,
			   ft.id, ft.name,
			   sem.name, sem.number, sem.program_id, sem.session_id
		FROM fee_vouchers v
		JOIN students s ON s.applicant_id = v.student_id
		JOIN applicants a ON a.id = v.student_id
		JOIN semester_fees sf ON sf.id = v.semester_fee_id
		JOIN fee_types ft ON ft.id = sf.fee_type_id
		JOIN semesters sem ON sem.id = v.semester_id
		WHERE v.voucher_id = $1`

	err := db.QueryRow(query, voucherID).Scan(
		&v.ID, &v.VoucherID, &v.StudentID, &v.SemesterFeeID, &v.SemesterID,
		&v.DueDate, &v.GeneratedAt, &v.IsPaid, &v.PaidAt, &v.PaymentID,
		&v.Student.UniversityRollNo, &v.Student.CollegeRollNo,
		&v.Student.RegistrationNo, &v.Student.CurrentStatus,
		&v.Student.Applicant.FullName, &v.Student.Applicant.Shift,
		&v.SemesterFee.Shift, &v.SemesterFee.DynamicFees,
		&v.SemesterFee.TotalAmount, &v.SemesterFee.IsActive,
		&v.SemesterFee.FeeType.ID, &v.SemesterFee.FeeType.Name,
		&v.Semester.Name, &v.Semester.Number, &v.Semester.ProgramID, &v.Semester.SessionID,
	)
	if err != nil {
		return nil, err
	}
	v.Student.ApplicantID = v.StudentID
	v.Student.Applicant.ID = v.StudentID
	v.SemesterFee.ID = v.SemesterFeeID
	v.Semester.ID = v.SemesterID
	return v, nil
}

// HasActiveEnrollment reports whether the student holds an 'enrolled' row
// for the semester. This is what makes a semester "active" for the late-fee
// rules.
func HasActiveEnrollment(db *sql.DB, studentID, semesterID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM student_semester_enrollments
		WHERE student_id = $1 AND semester_id = $2 AND status = 'enrolled'
	)`
	err := db.QueryRow(query, studentID, semesterID).Scan(&exists)
	return exists, err
}

// CreateVoucher issues a voucher for (student, semester fee, semester).
// The same triple can only ever hold one voucher.
func CreateVoucher(db *sql.DB, v *models.FeeVoucher, now time.Time) error {
	v.VoucherID = models.NewVoucherID(v.StudentID, now)
	query := `INSERT INTO fee_vouchers (voucher_id, student_id, semester_fee_id, semester_id, due_date, is_paid)
			  VALUES ($1, $2, $3, $4, $5, false)
			  RETURNING id, generated_at`
	err := db.QueryRow(query,
		v.VoucherID, v.StudentID, v.SemesterFeeID, v.SemesterID, v.DueDate,
	).Scan(&v.ID, &v.GeneratedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("a voucher for this student, semester and fee already exists")
		}
		return fmt.Errorf("failed to create voucher: %v", err)
	}
	return nil
}

// VerifyVoucherPayment records the office confirmation that a voucher was
// paid: a StudentFeePayment row for the computed total (surcharge included)
// and the paid flag on the voucher, linked together, in one transaction.
// There is no reverse operation.
func VerifyVoucherPayment(db *sql.DB, voucher *models.FeeVoucher, totalPaid float64, remarks string, now time.Time) (*models.StudentFeePayment, error) {
	if voucher.IsPaid {
		return nil, fmt.Errorf("voucher %s is already paid", voucher.VoucherID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	payment := &models.StudentFeePayment{
		StudentID:     voucher.StudentID,
		SemesterFeeID: voucher.SemesterFeeID,
		AmountPaid:    totalPaid,
		ReceiptNumber: models.NewReceiptNumber(now),
		Remarks:       remarks,
	}

	queryPayment := `INSERT INTO student_fee_payments (student_id, semester_fee_id, amount_paid, receipt_number, remarks)
					 VALUES ($1, $2, $3, $4, $5)
					 RETURNING id, payment_date`
	err = tx.QueryRow(queryPayment,
		payment.StudentID, payment.SemesterFeeID, payment.AmountPaid,
		payment.ReceiptNumber, payment.Remarks,
	).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %v", err)
	}

	res, err := tx.Exec(
		`UPDATE fee_vouchers SET is_paid = true, paid_at = $1, payment_id = $2 WHERE id = $3 AND is_paid = false`,
		now, payment.ID, voucher.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark voucher paid: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("voucher %s is already paid", voucher.VoucherID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	voucher.IsPaid = true
	voucher.PaidAt = &now
	voucher.PaymentID = &payment.ID
	return payment, nil
}

// ListVouchersForStudent returns a student's vouchers, newest first.
func ListVouchersForStudent(db *sql.DB, studentID int) ([]*models.FeeVoucher, error) {
	query := `
		SELECT v.id, v.voucher_id, v.student_id, v.semester_fee_id, v.semester_id,
			   v.due_date, v.generated_at, v.is_paid, v.paid_at
		FROM fee_vouchers v
		WHERE v.student_id = $1
		ORDER BY v.generated_at DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*models.FeeVoucher
	for rows.Next() {
		v := &models.FeeVoucher{}
		err := rows.Scan(
			&v.ID, &v.VoucherID, &v.StudentID, &v.SemesterFeeID, &v.SemesterID,
			&v.DueDate, &v.GeneratedAt, &v.IsPaid, &v.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}
