package services

import (
	"database/sql"
	"log"
	"time"
)

// DeactivateExpiredMeritLists flips is_active off on merit lists whose
// validity window has passed. Expired lists stop accepting admissions and
// free their remaining seats for the next list.
func DeactivateExpiredMeritLists(db *sql.DB) error {
	today := time.Now().Format("2006-01-02")

	res, err := db.Exec(`
		UPDATE merit_lists
		SET is_active = false
		WHERE is_active = true AND valid_until < $1
	`, today)
	if err != nil {
		return err
	}

	count, _ := res.RowsAffected()
	if count > 0 {
		log.Printf("Deactivated %d expired merit lists", count)
	}
	return nil
}

// DeactivateEndedSessions flips is_active off on academic sessions whose
// end year has passed.
func DeactivateEndedSessions(db *sql.DB) error {
	year := time.Now().Year()

	res, err := db.Exec(`
		UPDATE academic_sessions
		SET is_active = false
		WHERE is_active = true AND end_year < $1
	`, year)
	if err != nil {
		return err
	}

	count, _ := res.RowsAffected()
	if count > 0 {
		log.Printf("Deactivated %d ended academic sessions", count)
	}
	return nil
}
