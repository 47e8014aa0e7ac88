package intel

import "sort"

const (
	// CohortCap membatasi ukuran kohort agar statistik tidak didominasi
	// satu klaster besar.
	CohortCap = 20

	// MinSampleSize adalah ambang minimum sebelum statistik dianggap layak.
	MinSampleSize = 3
)

// SelectCohort memilih profil pembanding dari kandidat yang sudah difilter
// pada kesamaan klasifikasi match (kriteria broad, dari repository).
// Kriteria strict: tipe kontrak profil sama dengan tipe kontrak yang sedang
// dievaluasi untuk target. Jatuh ke broad bila strict terlalu kecil.
func SelectCohort(candidates []CohortProfile, targetEmployeeID string, evaluating RecommendationType) CohortSelection {
	evalContract, hasContract := evaluating.ContractFor()

	broad := make([]CohortProfile, 0, len(candidates))
	strict := make([]CohortProfile, 0, len(candidates))

	for _, p := range candidates {
		// Target tidak boleh menjadi pembanding dirinya sendiri
		if p.EmployeeID == targetEmployeeID {
			continue
		}
		broad = append(broad, p)
		if hasContract && p.CurrentContractType == evalContract {
			strict = append(strict, p)
		}
	}

	selection := CohortSelection{
		StrictCount: len(strict),
		BroadCount:  len(broad),
	}

	if len(strict) >= MinSampleSize {
		selection.Profiles = capMostRecent(strict, CohortCap)
		selection.Strict = true
	} else {
		selection.Profiles = capMostRecent(broad, CohortCap)
	}

	return selection
}

func capMostRecent(profiles []CohortProfile, limit int) []CohortProfile {
	sorted := make([]CohortProfile, len(profiles))
	copy(sorted, profiles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
