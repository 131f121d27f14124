package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewVoucherID builds a voucher identifier from the issue timestamp and the
// student id, e.g. 202508281430050042.
func NewVoucherID(studentID int, now time.Time) string {
	return fmt.Sprintf("%s%04d", now.Format("20060102150405"), studentID%10000)
}

// NewReceiptNumber builds a unique receipt number for a verified payment.
func NewReceiptNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}

// FeeType names a category of fee, e.g. Admission Fee, Semester Fee.
type FeeType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// FeeComponent is one named head in a fee breakdown, e.g. "Tuition Fee".
type FeeComponent struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FeeComponents is an ordered list of fee heads. Stored as a JSONB array so
// the breakdown prints in the order the office entered it.
type FeeComponents []FeeComponent

// Scan implements the Scanner interface for database reading
func (fc *FeeComponents) Scan(value interface{}) error {
	if value == nil {
		*fc = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into FeeComponents", value)
	}
	return json.Unmarshal(b, fc)
}

// Value implements the Valuer interface for database writing
func (fc FeeComponents) Value() (driver.Value, error) {
	if fc == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(fc)
}

// Total sums all component amounts.
func (fc FeeComponents) Total() float64 {
	var total float64
	for _, c := range fc {
		total += c.Amount
	}
	return total
}

// SemesterFee is a fee schedule: a base total broken into dynamic fee heads,
// applicable to one shift.
type SemesterFee struct {
	ID          int           `json:"id"`
	FeeTypeID   int           `json:"fee_type_id"`
	Shift       Shift         `json:"shift"`
	DynamicFees FeeComponents `json:"dynamic_fees"`
	TotalAmount float64       `json:"total_amount"`
	IsActive    bool          `json:"is_active"`

	FeeType *FeeType `json:"fee_type,omitempty"`
}

// FeeToProgram maps a semester fee schedule to the programs and semesters
// of one academic session it applies to.
type FeeToProgram struct {
	ID            int   `json:"id"`
	SemesterFeeID int   `json:"semester_fee_id"`
	SessionID     int   `json:"session_id"`
	ProgramIDs    []int `json:"program_ids"`
	SemesterIDs   []int `json:"semester_ids"`
}

// FeeVoucher is a payment instruction document issued to a student for one
// semester fee in one semester. The payable amount is never stored; it is
// recomputed from the schedule and the late-fee rules on every view.
type FeeVoucher struct {
	ID            int        `json:"id"`
	VoucherID     string     `json:"voucher_id"`
	StudentID     int        `json:"student_id"`
	SemesterFeeID int        `json:"semester_fee_id"`
	SemesterID    int        `json:"semester_id"`
	DueDate       CustomTime `json:"due_date"`
	GeneratedAt   time.Time  `json:"generated_at"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaymentID     *int       `json:"payment_id,omitempty"`

	Student     *Student     `json:"student,omitempty"`
	SemesterFee *SemesterFee `json:"semester_fee,omitempty"`
	Semester    *Semester    `json:"semester,omitempty"`
}

// Overdue reports whether the voucher's due date has passed. The voucher
// stays payable at face value through the whole of its due day.
func (v *FeeVoucher) Overdue(today time.Time) bool {
	return DatePassed(v.DueDate.Time, today)
}

// StudentFeePayment records a verified payment against a semester fee.
// Creation is one-way; there is no unpay.
type StudentFeePayment struct {
	ID            int       `json:"id"`
	StudentID     int       `json:"student_id"`
	SemesterFeeID int       `json:"semester_fee_id"`
	AmountPaid    float64   `json:"amount_paid"`
	PaymentDate   time.Time `json:"payment_date"`
	ReceiptNumber string    `json:"receipt_number"`
	Remarks       string    `json:"remarks,omitempty"`
}
