package intel

import "math"

const (
	// PermanentReadyThreshold: success rate minimum sebelum kontrak 3 boleh
	// naik ke permanent.
	PermanentReadyThreshold = 75.0

	// EvaluationWindowMonths adalah durasi tetap untuk karyawan Unmatch.
	// Sengaja tidak memakai avg_duration kohort agar eksposur risiko terbatas.
	EvaluationWindowMonths = 6

	// DefaultDurationMonths dipakai saat avg_duration kohort 0 atau
	// sample terlalu kecil.
	DefaultDurationMonths = 12
)

// supportedDurations adalah pilihan durasi kontrak yang berlaku (bulan).
var supportedDurations = []int{6, 12, 18, 24}

// PreliminaryType menentukan jenis kontrak berikutnya yang akan dievaluasi,
// sebelum kohort dipilih. Seleksi kohort bersifat stage-aware dan butuh tahu
// "kontrak apa yang sedang dipertimbangkan" lebih dulu.
func PreliminaryType(c Classification, current ContractType) RecommendationType {
	if c.Eliminated {
		return RecommendTerminate
	}
	if current == ContractPermanent {
		return RecommendNone
	}

	switch current {
	case ContractProbation, ContractFirst:
		return RecommendKontrak2
	case ContractSecond:
		return RecommendKontrak3
	default:
		if c.Match == MatchStatusMatch {
			return RecommendPermanent
		}
		return RecommendKontrak3
	}
}

// Recommend memutuskan rekomendasi final. Fungsi murni: input identik selalu
// menghasilkan output identik. Urutan aturan menentukan; aturan pertama yang
// cocok menang.
func Recommend(in PolicyInput) PolicyResult {
	// 1. Eliminasi mengalahkan semua statistik kohort
	if in.Classification.Eliminated {
		return PolicyResult{
			RecommendedType: RecommendTerminate,
			DurationMonths:  0,
			Risk:            RiskHigh,
			Confidence:      ConfidenceLow,
			CategoryLabel:   "Tidak Direkomendasikan",
		}
	}

	// 2. Sudah permanent, tidak ada keputusan yang perlu diambil
	if in.CurrentContract == ContractPermanent {
		return PolicyResult{
			RecommendedType: RecommendNone,
			DurationMonths:  0,
			Risk:            RiskLow,
			Confidence:      ConfidenceHigh,
			CategoryLabel:   "Sudah Permanent",
		}
	}

	risk := riskLevel(in.Stats)
	confidence := confidenceLevel(in.Stats, in.StrictCohort)

	// 3. Unmatch: tangga evaluasi konservatif, tidak pernah permanent
	if in.Classification.Match == MatchStatusUnmatch {
		result := PolicyResult{
			DurationMonths: EvaluationWindowMonths,
			Risk:           risk,
			Confidence:     confidence,
		}
		switch in.CurrentContract {
		case ContractProbation, ContractFirst:
			result.RecommendedType = RecommendKontrak2
			result.CategoryLabel = "Kontrak 2 (Evaluasi)"
		default:
			result.RecommendedType = RecommendKontrak3
			result.CategoryLabel = "Kontrak 3 (Evaluasi)"
		}
		return result
	}

	// 4. Match: tangga progresif mengikuti statistik kohort
	switch in.CurrentContract {
	case ContractProbation, ContractFirst:
		return PolicyResult{
			RecommendedType: RecommendKontrak2,
			DurationMonths:  cohortDuration(in.Stats),
			Risk:            risk,
			Confidence:      confidence,
			CategoryLabel:   "Sesuai",
		}
	case ContractSecond:
		return PolicyResult{
			RecommendedType: RecommendKontrak3,
			DurationMonths:  cohortDuration(in.Stats),
			Risk:            risk,
			Confidence:      confidence,
			CategoryLabel:   "Sesuai",
		}
	default: // kontrak 3, tahap berjangka terakhir
		if in.Stats.SuccessRate >= PermanentReadyThreshold && !in.Stats.LowSample {
			return PolicyResult{
				RecommendedType: RecommendPermanent,
				DurationMonths:  0,
				Risk:            risk,
				Confidence:      confidence,
				CategoryLabel:   "Siap Permanent",
			}
		}
		return PolicyResult{
			RecommendedType: RecommendKontrak3,
			DurationMonths:  cohortDuration(in.Stats),
			Risk:            risk,
			Confidence:      confidence,
			CategoryLabel:   "Kontrak 3 (Evaluasi)",
		}
	}
}

// cohortDuration membulatkan avg_duration kohort ke pilihan durasi terdekat.
func cohortDuration(stats CohortStats) int {
	if stats.AvgDurationMonths <= 0 || stats.LowSample {
		return DefaultDurationMonths
	}

	best := supportedDurations[0]
	bestDiff := math.Abs(stats.AvgDurationMonths - float64(best))
	for _, d := range supportedDurations[1:] {
		diff := math.Abs(stats.AvgDurationMonths - float64(d))
		if diff < bestDiff {
			best = d
			bestDiff = diff
		}
	}
	return best
}

func riskLevel(stats CohortStats) RiskLevel {
	switch {
	case stats.ResignRate > 40 || stats.EarlyResignRate > 30:
		return RiskHigh
	case stats.ResignRate > 25 || stats.EarlyResignRate > 15:
		return RiskMedium
	default:
		return RiskLow
	}
}

func confidenceLevel(stats CohortStats, strict bool) ConfidenceLevel {
	if stats.LowSample {
		return ConfidenceLow
	}
	if strict {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}
