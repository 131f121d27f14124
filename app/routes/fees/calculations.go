package fees

import (
	"math"
	"time"

	"campus360/app/models"
)

// Surcharge component names as they appear on printed vouchers.
const (
	LateFee10Head  = "Late Fee 10%"
	LateFee100Head = "Late Fee 100%"
	LateDuesHead   = "Late Dues"
)

// VoucherTotal is the computed payable breakdown for a voucher view. The
// surcharge is derived fresh on every computation and never stored.
type VoucherTotal struct {
	Components models.FeeComponents `json:"components"`
	Total      float64              `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeVoucherTotal applies the late fee policy to a fee schedule. The
// policy branches are mutually exclusive and evaluated in priority order:
//
//  1. due date passed, semester active   -> 10% surcharge
//  2. due date passed, semester inactive -> 100% surcharge
//  3. semester inactive, not yet due     -> "Late Dues" (100%)
//  4. on time, semester active           -> no surcharge
//
// A semester is active when the student holds an 'enrolled' enrollment for
// it. The result is a pure function of the inputs.
func ComputeVoucherTotal(baseComponents models.FeeComponents, baseTotal float64, dueDate, today time.Time, activeSemester bool) VoucherTotal {
	components := make(models.FeeComponents, len(baseComponents))
	copy(components, baseComponents)

	total := baseTotal
	overdue := models.DatePassed(dueDate, today)

	switch {
	case overdue && activeSemester:
		surcharge := round2(total * 0.10)
		components = append(components, models.FeeComponent{Name: LateFee10Head, Amount: surcharge})
		total = round2(total + surcharge)
	case overdue && !activeSemester:
		components = append(components, models.FeeComponent{Name: LateFee100Head, Amount: total})
		total = round2(total * 2)
	case !activeSemester:
		components = append(components, models.FeeComponent{Name: LateDuesHead, Amount: total})
		total = round2(total * 2)
	}

	return VoucherTotal{Components: components, Total: total}
}
