package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 00:05 each night
			if now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [00:05]...")

				if err := DeactivateExpiredMeritLists(db); err != nil {
					log.Printf("Error deactivating expired merit lists: %v", err)
				}
				if err := DeactivateEndedSessions(db); err != nil {
					log.Printf("Error deactivating ended sessions: %v", err)
				}
			}
		}
	}()
}
