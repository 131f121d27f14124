package merit

import (
	"testing"

	"campus360/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qual(year, obtained, total int) *models.AcademicQualification {
	return &models.AcademicQualification{
		ExamPassed:    "Intermediate",
		PassingYear:   year,
		MarksObtained: obtained,
		TotalMarks:    total,
	}
}

func TestBestQualificationPercentage(t *testing.T) {
	tests := []struct {
		name    string
		quals   []*models.AcademicQualification
		wantPct float64
		wantOK  bool
	}{
		{
			name:    "single qualification",
			quals:   []*models.AcademicQualification{qual(2024, 45, 50)},
			wantPct: 90.0,
			wantOK:  true,
		},
		{
			name: "most recent passing year wins",
			quals: []*models.AcademicQualification{
				qual(2022, 980, 1100),
				qual(2024, 875, 1100),
			},
			wantPct: float64(875) / float64(1100) * 100,
			wantOK:  true,
		},
		{
			name:   "no qualifications",
			quals:  nil,
			wantOK: false,
		},
		{
			name:   "zero total marks is unusable",
			quals:  []*models.AcademicQualification{qual(2024, 45, 0)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, ok := BestQualificationPercentage(tt.quals)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantPct, pct, 0.0001)
			}
		})
	}
}

func TestRankCandidates_OrderAndTieBreak(t *testing.T) {
	applicants := []*models.Applicant{
		{ID: 3, Qualifications: []*models.AcademicQualification{qual(2024, 800, 1000)}}, // 80%
		{ID: 1, Qualifications: []*models.AcademicQualification{qual(2024, 900, 1000)}}, // 90%
		{ID: 5, Qualifications: []*models.AcademicQualification{qual(2024, 800, 1000)}}, // 80%, ties with 3
		{ID: 2, Qualifications: []*models.AcademicQualification{qual(2024, 950, 1000)}}, // 95%
	}

	ranked := RankCandidates(applicants)
	require.Len(t, ranked, 4)

	gotIDs := []int{ranked[0].Applicant.ID, ranked[1].Applicant.ID, ranked[2].Applicant.ID, ranked[3].Applicant.ID}
	assert.Equal(t, []int{2, 1, 3, 5}, gotIDs)

	assert.InDelta(t, 95.0, ranked[0].Percentage, 0.0001)
	assert.InDelta(t, 80.0, ranked[3].Percentage, 0.0001)
}

func TestRankCandidates_DropsUnusableApplicants(t *testing.T) {
	applicants := []*models.Applicant{
		{ID: 1, Qualifications: []*models.AcademicQualification{qual(2024, 700, 1000)}},
		{ID: 2}, // no qualifications at all
		{ID: 3, Qualifications: []*models.AcademicQualification{qual(2024, 700, 0)}},
	}

	ranked := RankCandidates(applicants)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Applicant.ID)
}

func TestRankCandidates_Empty(t *testing.T) {
	assert.Empty(t, RankCandidates(nil))
}
