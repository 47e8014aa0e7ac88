package intel

import "math"

// minTenureMonths adalah masa kerja minimum yang wajar per tahap kontrak.
// Resign di bawah angka ini dihitung sebagai early resign.
var minTenureMonths = map[ContractType]float64{
	ContractProbation: 3,
	ContractFirst:     6,
	ContractSecond:    12,
	ContractThird:     18,
}

// Aggregate menghitung statistik hasil atas satu kohort.
// Kohort kosong aman: semua rate 0 dan LowSample true.
func Aggregate(cohort []CohortProfile) CohortStats {
	stats := CohortStats{
		SampleSize: len(cohort),
		LowSample:  len(cohort) < MinSampleSize,
	}

	if len(cohort) == 0 {
		return stats
	}

	var successCount, resignCount, earlyResignCount int
	var totalTenure float64

	for _, p := range cohort {
		totalTenure += p.TotalTenureMonths

		switch p.Outcome {
		case OutcomeCurrentlyActive, OutcomeReachedPermanent:
			successCount++
		case OutcomeResigned:
			resignCount++
			if min, ok := minTenureMonths[p.CurrentContractType]; ok && p.TotalTenureMonths < min {
				earlyResignCount++
			}
		}
	}

	stats.SuccessRate = roundOneDecimal(float64(successCount) / float64(len(cohort)) * 100)
	// resign_rate adalah komplemen success_rate, bukan persentase outcome Resigned:
	// Terminated ikut terhitung sebagai kegagalan
	stats.ResignRate = roundOneDecimal(100 - stats.SuccessRate)

	if resignCount > 0 {
		stats.EarlyResignRate = roundOneDecimal(float64(earlyResignCount) / float64(resignCount) * 100)
	}

	stats.AvgDurationMonths = roundOneDecimal(totalTenure / float64(len(cohort)))

	return stats
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
