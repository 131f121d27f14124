package models

import "time"

// Student is created exactly once per applicant at admission time.
// ApplicantID doubles as the primary key, which is what enforces the
// one-student-per-applicant rule at the storage layer.
type Student struct {
	ApplicantID      int           `json:"applicant_id"`
	UniversityRollNo int           `json:"university_roll_no"`
	CollegeRollNo    int           `json:"college_roll_no"`
	RegistrationNo   string        `json:"registration_no"`
	EnrollmentDate   time.Time     `json:"enrollment_date"`
	CurrentStatus    StudentStatus `json:"current_status"`

	Applicant *Applicant `json:"applicant,omitempty"`
}

// StudentSemesterEnrollment records a student's enrollment in one semester.
// An 'enrolled' row is what makes a semester "active" for fee computation.
type StudentSemesterEnrollment struct {
	ID         int              `json:"id"`
	StudentID  int              `json:"student_id"`
	SemesterID int              `json:"semester_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`

	Semester *Semester `json:"semester,omitempty"`
}
