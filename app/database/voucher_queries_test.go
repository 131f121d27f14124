package database

import (
	"testing"
	"time"

	"campus360/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVoucher_DuplicateTriple(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO fee_vouchers`).
		WillReturnError(errConstraint())

	v := &models.FeeVoucher{
		StudentID:     42,
		SemesterFeeID: 3,
		SemesterID:    9,
		DueDate:       models.CustomTime{Time: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
	}
	err = CreateVoucher(db, v, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyVoucherPayment_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	voucher := &models.FeeVoucher{
		ID:            8,
		VoucherID:     "202608281100000042",
		StudentID:     42,
		SemesterFeeID: 3,
		IsPaid:        false,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_date"}).AddRow(15, now))
	mock.ExpectExec(`UPDATE fee_vouchers SET is_paid = true`).
		WithArgs(now, 15, 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment, err := VerifyVoucherPayment(db, voucher, 11000, "counter payment", now)
	require.NoError(t, err)

	assert.Equal(t, 11000.0, payment.AmountPaid)
	assert.Equal(t, 42, payment.StudentID)
	assert.NotEmpty(t, payment.ReceiptNumber)
	assert.True(t, voucher.IsPaid)
	require.NotNil(t, voucher.PaymentID)
	assert.Equal(t, 15, *voucher.PaymentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyVoucherPayment_AlreadyPaidFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	voucher := &models.FeeVoucher{ID: 8, VoucherID: "x", IsPaid: true}

	_, err = VerifyVoucherPayment(db, voucher, 11000, "", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyVoucherPayment_ConcurrentVerifyLosesRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	voucher := &models.FeeVoucher{ID: 8, VoucherID: "x", StudentID: 42, SemesterFeeID: 3}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_date"}).AddRow(15, now))
	// Another teller verified the voucher between the read and the update;
	// the guarded UPDATE matches nothing and everything rolls back.
	mock.ExpectExec(`UPDATE fee_vouchers SET is_paid = true`).
		WithArgs(now, 15, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = VerifyVoucherPayment(db, voucher, 11000, "", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
	assert.False(t, voucher.IsPaid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasActiveEnrollment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(42, 9).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := HasActiveEnrollment(db, 42, 9)
	require.NoError(t, err)
	assert.True(t, active)

	assert.NoError(t, mock.ExpectationsWereMet())
}
