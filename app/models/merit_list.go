package models

import "time"

// MeritList is a ranked, seat-capped subset of eligible applicants for one
// admission round. Lists are numbered sequentially per (program, shift,
// session); list N inherits the unfilled seats of list N-1.
type MeritList struct {
	ID           int        `json:"id"`
	ProgramID    int        `json:"program_id"`
	SessionID    int        `json:"session_id"`
	Shift        Shift      `json:"shift"`
	ListNumber   int        `json:"list_number"`
	TotalSeats   int        `json:"total_seats"`
	SecuredSeats int        `json:"secured_seats"`
	ValidUntil   CustomTime `json:"valid_until"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`

	Program *Program          `json:"program,omitempty"`
	Session *AcademicSession  `json:"session,omitempty"`
	Entries []*MeritListEntry `json:"entries,omitempty"`
}

// Expired reports whether the list's validity window has passed. The list
// remains valid through the whole of its valid_until day, matching the
// nightly sweep's valid_until < today cutoff.
func (m *MeritList) Expired(today time.Time) bool {
	return DatePassed(m.ValidUntil.Time, today)
}

// RemainingSeats returns the unfilled seats carried over to the next list.
func (m *MeritList) RemainingSeats() int {
	return m.TotalSeats - m.SecuredSeats
}

// MeritListEntry is one ranked applicant on a merit list. Positions are
// unique within a list and continuous across the chained lists of a cycle.
type MeritListEntry struct {
	ID                 int         `json:"id"`
	MeritListID        int         `json:"merit_list_id"`
	ApplicantID        int         `json:"applicant_id"`
	MeritPosition      int         `json:"merit_position"`
	RelevantPercentage float64     `json:"relevant_percentage"`
	Status             EntryStatus `json:"status"`

	Applicant *Applicant `json:"applicant,omitempty"`
}
