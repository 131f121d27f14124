package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniversityRollNo(t *testing.T) {
	roll, err := UniversityRollNo(2025, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, 25070042, roll)

	roll, err = UniversityRollNo(2026, 12, 1234)
	require.NoError(t, err)
	assert.Equal(t, 26121234, roll)
}

func TestUniversityRollNo_SegmentOverflow(t *testing.T) {
	_, err := UniversityRollNo(2025, 100, 42)
	assert.Error(t, err)

	_, err = UniversityRollNo(2025, 7, 10000)
	assert.Error(t, err)
}

func TestRegistrationNo(t *testing.T) {
	assert.Equal(t, "2025-GGCJ-25070042", RegistrationNo(2025, 25070042))
}

func TestCollegeRollNo_MorningShift(t *testing.T) {
	// First admission of program 7: sequence 1.
	roll, err := CollegeRollNo(7, 0, MorningShift, 50)
	require.NoError(t, err)
	assert.Equal(t, 701, roll)

	// Eleventh admission: sequence 11.
	roll, err = CollegeRollNo(7, 10, MorningShift, 50)
	require.NoError(t, err)
	assert.Equal(t, 711, roll)
}

func TestCollegeRollNo_EveningShiftOffset(t *testing.T) {
	// Evening sequences start after the morning block.
	roll, err := CollegeRollNo(7, 0, EveningShift, 50)
	require.NoError(t, err)
	assert.Equal(t, 751, roll)

	roll, err = CollegeRollNo(7, 3, EveningShift, 50)
	require.NoError(t, err)
	assert.Equal(t, 754, roll)
}

func TestCollegeRollNo_ConfigurableEveningBlock(t *testing.T) {
	roll, err := CollegeRollNo(7, 0, EveningShift, 40)
	require.NoError(t, err)
	assert.Equal(t, 741, roll)
}

func TestCollegeRollNo_SequenceOverflow(t *testing.T) {
	_, err := CollegeRollNo(7, 99, MorningShift, 50)
	assert.Error(t, err)

	_, err = CollegeRollNo(7, 49, EveningShift, 50)
	assert.Error(t, err)

	_, err = CollegeRollNo(100, 0, MorningShift, 50)
	assert.Error(t, err)
}
