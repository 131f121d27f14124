package models

// Shift defines the class shift an applicant applies for.
type Shift string

const (
	MorningShift Shift = "morning"
	EveningShift Shift = "evening"
)

// ValidShift reports whether s is a recognised shift value.
func ValidShift(s string) bool {
	return Shift(s) == MorningShift || Shift(s) == EveningShift
}

// ApplicantStatus defines the lifecycle states of an application.
type ApplicantStatus string

const (
	ApplicantPending  ApplicantStatus = "pending"
	ApplicantAccepted ApplicantStatus = "accepted"
	ApplicantRejected ApplicantStatus = "rejected"
	ApplicantAdmitted ApplicantStatus = "admitted"
)

// PaymentStatus defines the status of an applicant's admission processing payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// EntryStatus defines the status of a merit list entry.
type EntryStatus string

const (
	EntrySelected EntryStatus = "selected"
	EntryAdmitted EntryStatus = "admitted"
)

// StudentStatus defines the status of an enrolled student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentSuspended StudentStatus = "suspended"
	StudentGraduated StudentStatus = "graduated"
	StudentWithdrawn StudentStatus = "withdrawn"
)

// EnrollmentStatus defines the status of a student's semester enrollment.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)
