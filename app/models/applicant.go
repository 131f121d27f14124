package models

import "time"

// Applicant is a person who has applied to a program for an academic session.
// Status is mutated by office verification and admission granting; the rest
// of the record is immutable once admitted.
type Applicant struct {
	ID         int             `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	CNIC       string          `json:"cnic"`
	ContactNo  string          `json:"contact_no,omitempty"`
	FatherName string          `json:"father_name,omitempty"`
	ProgramID  int             `json:"program_id"`
	SessionID  int             `json:"session_id"`
	Shift      Shift           `json:"shift"`
	Status     ApplicantStatus `json:"status"`
	AppliedAt  time.Time       `json:"applied_at"`

	Program        *Program                 `json:"program,omitempty"`
	Session        *AcademicSession         `json:"session,omitempty"`
	Qualifications []*AcademicQualification `json:"qualifications,omitempty"`
	Payment        *ApplicantPayment        `json:"payment,omitempty"`
}

// AcademicQualification is one prior exam record of an applicant.
// The most recent record (max passing year) is the one merit ranking scores.
type AcademicQualification struct {
	ID            int    `json:"id"`
	ApplicantID   int    `json:"applicant_id"`
	ExamPassed    string `json:"exam_passed"`
	PassingYear   int    `json:"passing_year"`
	MarksObtained int    `json:"marks_obtained"`
	TotalMarks    int    `json:"total_marks"`
	Board         string `json:"board,omitempty"`
	Institute     string `json:"institute,omitempty"`
}

// Percentage returns the qualification score and whether the record is
// usable for ranking (both marks present and a positive total).
func (q *AcademicQualification) Percentage() (float64, bool) {
	if q.TotalMarks <= 0 || q.MarksObtained < 0 {
		return 0, false
	}
	return float64(q.MarksObtained) / float64(q.TotalMarks) * 100, true
}

// ApplicantPayment is the admission processing payment that gates merit
// eligibility. One per applicant.
type ApplicantPayment struct {
	ID          int           `json:"id"`
	ApplicantID int           `json:"applicant_id"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
