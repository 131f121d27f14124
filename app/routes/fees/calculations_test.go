package fees

import (
	"testing"
	"time"

	"campus360/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseComponents = models.FeeComponents{
	{Name: "Tuition Fee", Amount: 9000},
	{Name: "Library Fee", Amount: 1000},
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestComputeVoucherTotal_OnTimeActive(t *testing.T) {
	result := ComputeVoucherTotal(baseComponents, 10000, date(2026, 9, 15), date(2026, 9, 1), true)

	assert.Equal(t, 10000.0, result.Total)
	require.Len(t, result.Components, 2)
}

func TestComputeVoucherTotal_OverdueActive(t *testing.T) {
	result := ComputeVoucherTotal(baseComponents, 10000, date(2026, 9, 1), date(2026, 9, 15), true)

	assert.Equal(t, 11000.0, result.Total)
	require.Len(t, result.Components, 3)
	assert.Equal(t, LateFee10Head, result.Components[2].Name)
	assert.Equal(t, 1000.0, result.Components[2].Amount)
}

func TestComputeVoucherTotal_OverdueInactive(t *testing.T) {
	result := ComputeVoucherTotal(baseComponents, 10000, date(2026, 9, 1), date(2026, 9, 15), false)

	assert.Equal(t, 20000.0, result.Total)
	require.Len(t, result.Components, 3)
	assert.Equal(t, LateFee100Head, result.Components[2].Name)
	assert.Equal(t, 10000.0, result.Components[2].Amount)
}

func TestComputeVoucherTotal_NotDueInactive(t *testing.T) {
	result := ComputeVoucherTotal(baseComponents, 10000, date(2026, 9, 15), date(2026, 9, 1), false)

	assert.Equal(t, 20000.0, result.Total)
	require.Len(t, result.Components, 3)
	assert.Equal(t, LateDuesHead, result.Components[2].Name)
}

func TestComputeVoucherTotal_SurchargeRounding(t *testing.T) {
	// 10% of 10333 is 1033.3; the surcharge and the total both round to
	// two decimals.
	result := ComputeVoucherTotal(nil, 10333, date(2026, 9, 1), date(2026, 9, 15), true)

	require.Len(t, result.Components, 1)
	assert.InDelta(t, 1033.3, result.Components[0].Amount, 0.001)
	assert.InDelta(t, 11366.3, result.Total, 0.001)
}

func TestComputeVoucherTotal_DueTodayIsNotOverdue(t *testing.T) {
	// due_date scans as midnight; a mid-afternoon clock on the same day
	// must not trigger the surcharge.
	due := date(2026, 9, 15)
	now := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	result := ComputeVoucherTotal(baseComponents, 10000, due, now, true)

	assert.Equal(t, 10000.0, result.Total)
	assert.Len(t, result.Components, 2)
}

func TestComputeVoucherTotal_OverdueFromDayAfterDue(t *testing.T) {
	due := date(2026, 9, 15)
	result := ComputeVoucherTotal(baseComponents, 10000, due, date(2026, 9, 16), true)

	assert.Equal(t, 11000.0, result.Total)
}

func TestComputeVoucherTotal_DoesNotMutateSchedule(t *testing.T) {
	components := models.FeeComponents{{Name: "Tuition Fee", Amount: 5000}}
	ComputeVoucherTotal(components, 5000, date(2026, 9, 1), date(2026, 9, 15), true)

	assert.Len(t, components, 1)
}
