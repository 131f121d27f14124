package merit

import (
	"sort"

	"campus360/app/database"
	"campus360/app/models"
)

// BestQualificationPercentage scores an applicant from their most recent
// qualification (highest passing year). The second return is false when the
// applicant has no usable record, which silently excludes them from ranking.
func BestQualificationPercentage(quals []*models.AcademicQualification) (float64, bool) {
	var best *models.AcademicQualification
	for _, q := range quals {
		if best == nil || q.PassingYear > best.PassingYear {
			best = q
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Percentage()
}

// RankCandidates scores and orders applicants for a merit list: descending
// by percentage, ties broken by applicant id ascending. Applicants without
// a usable qualification are dropped.
func RankCandidates(applicants []*models.Applicant) []database.RankedCandidate {
	ranked := make([]database.RankedCandidate, 0, len(applicants))
	for _, a := range applicants {
		pct, ok := BestQualificationPercentage(a.Qualifications)
		if !ok {
			continue
		}
		ranked = append(ranked, database.RankedCandidate{Applicant: a, Percentage: pct})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		return ranked[i].Applicant.ID < ranked[j].Applicant.ID
	})
	return ranked
}
