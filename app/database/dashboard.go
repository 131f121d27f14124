package database

import (
	"database/sql"

	"campus360/app/models"
)

// GetDashboardStats returns the headline numbers for the office dashboard.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'pending'),
			   COUNT(*) FILTER (WHERE status = 'accepted'),
			   COUNT(*) FILTER (WHERE status = 'admitted')
		FROM applicants
	`).Scan(&stats.TotalApplicants, &stats.PendingApplicants,
		&stats.AcceptedApplicants, &stats.AdmittedStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE is_active = true), COALESCE(SUM(secured_seats), 0)
		FROM merit_lists
	`).Scan(&stats.ActiveMeritLists, &stats.SeatsSecured)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM fee_vouchers WHERE is_paid = false`).
		Scan(&stats.UnpaidVouchers)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount_paid), 0) FROM student_fee_payments`).
		Scan(&stats.CollectedAmount)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
