package models

// DashboardStats holds the headline numbers for the office dashboard.
type DashboardStats struct {
	TotalApplicants    int     `json:"total_applicants"`
	PendingApplicants  int     `json:"pending_applicants"`
	AcceptedApplicants int     `json:"accepted_applicants"`
	AdmittedStudents   int     `json:"admitted_students"`
	ActiveMeritLists   int     `json:"active_merit_lists"`
	SeatsSecured       int     `json:"seats_secured"`
	UnpaidVouchers     int     `json:"unpaid_vouchers"`
	CollectedAmount    float64 `json:"collected_amount"`
}
