package models

import (
	"fmt"
	"strconv"
)

// UniversityRollNo builds the numeric university roll number from the last
// two digits of the session start year, the zero-padded program id and the
// zero-padded applicant id, e.g. session 2025, program 7, applicant 42
// yields 25070042.
func UniversityRollNo(sessionStartYear, programID, applicantID int) (int, error) {
	if programID > 99 {
		return 0, fmt.Errorf("program id %d does not fit the 2-digit roll segment", programID)
	}
	if applicantID > 9999 {
		return 0, fmt.Errorf("applicant id %d does not fit the 4-digit roll segment", applicantID)
	}
	s := fmt.Sprintf("%02d%02d%04d", sessionStartYear%100, programID, applicantID)
	return strconv.Atoi(s)
}

// RegistrationNo builds the printed registration number for a student.
func RegistrationNo(sessionStartYear, universityRollNo int) string {
	return fmt.Sprintf("%d-GGCJ-%d", sessionStartYear, universityRollNo)
}

// CollegeRollNo builds the numeric college roll number: the zero-padded
// program id followed by a 2-digit sequence. Morning-shift sequences start
// at securedSeats+1; evening-shift sequences start after the morning block
// (eveningBlock seats, normally 50) so the two ranges never overlap.
func CollegeRollNo(programID, securedSeats int, shift Shift, eveningBlock int) (int, error) {
	if programID > 99 {
		return 0, fmt.Errorf("program id %d does not fit the 2-digit roll segment", programID)
	}
	seq := securedSeats + 1
	if shift == EveningShift {
		seq += eveningBlock
	}
	if seq > 99 {
		return 0, fmt.Errorf("roll sequence %d does not fit the 2-digit segment", seq)
	}
	s := fmt.Sprintf("%02d%02d", programID, seq)
	return strconv.Atoi(s)
}
