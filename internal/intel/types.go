package intel

import "time"

// ContractType mengikuti nilai kolom contracts.type di database.
type ContractType string

const (
	ContractProbation ContractType = "probation"
	ContractFirst     ContractType = "1"
	ContractSecond    ContractType = "2"
	ContractThird     ContractType = "3"
	ContractPermanent ContractType = "permanent"
)

// RecommendationType adalah jenis keputusan yang bisa direkomendasikan engine.
type RecommendationType string

const (
	RecommendKontrak2  RecommendationType = "kontrak2"
	RecommendKontrak3  RecommendationType = "kontrak3"
	RecommendPermanent RecommendationType = "permanent"
	RecommendTerminate RecommendationType = "terminate"
	RecommendNone      RecommendationType = "none"
)

// ContractFor memetakan jenis rekomendasi ke tipe kontrak yang akan dibuat.
func (r RecommendationType) ContractFor() (ContractType, bool) {
	switch r {
	case RecommendKontrak2:
		return ContractSecond, true
	case RecommendKontrak3:
		return ContractThird, true
	case RecommendPermanent:
		return ContractPermanent, true
	default:
		return "", false
	}
}

// RequiresDuration: kontrak berjangka butuh durasi, permanent dan terminate tidak.
func (r RecommendationType) RequiresDuration() bool {
	return r == RecommendKontrak2 || r == RecommendKontrak3
}

type MatchStatus string

const (
	MatchStatusMatch   MatchStatus = "Match"
	MatchStatusUnmatch MatchStatus = "Unmatch"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

// OutcomeStatus adalah hasil akhir yang diamati pada profil historis.
type OutcomeStatus string

const (
	OutcomeCurrentlyActive  OutcomeStatus = "Currently_Active"
	OutcomeReachedPermanent OutcomeStatus = "Reached_Permanent"
	OutcomeResigned         OutcomeStatus = "Resigned"
	OutcomeTerminated       OutcomeStatus = "Terminated"
)

// Classification adalah keluaran Match Classifier untuk satu karyawan.
type Classification struct {
	IsITEducation bool        `json:"is_it_education"`
	IsITJob       bool        `json:"is_it_job"`
	Match         MatchStatus `json:"match"`
	Eliminated    bool        `json:"eliminated"`
}

// CohortProfile adalah satu profil historis pembanding.
type CohortProfile struct {
	EmployeeID          string
	Match               MatchStatus
	CurrentContractType ContractType
	Outcome             OutcomeStatus
	TotalTenureMonths   float64
	CreatedAt           time.Time
}

// CohortSelection adalah hasil seleksi kohort beserta sinyal strict/broad.
type CohortSelection struct {
	Profiles    []CohortProfile
	StrictCount int
	BroadCount  int
	// Strict true bila kohort terpilih memenuhi kriteria tipe-kontrak,
	// bukan hanya kesamaan klasifikasi match.
	Strict bool
}

// CohortStats adalah keluaran Outcome Aggregator.
type CohortStats struct {
	SampleSize        int     `json:"sample_size"`
	SuccessRate       float64 `json:"success_rate"`
	ResignRate        float64 `json:"resign_rate"`
	EarlyResignRate   float64 `json:"early_resign_rate"`
	AvgDurationMonths float64 `json:"avg_duration"`
	// LowSample menandai sample di bawah ambang minimum. Bukan kondisi fatal;
	// policy menurunkan confidence, bukan menolak menghitung.
	LowSample bool `json:"low_sample"`
}

// PolicyInput adalah seluruh masukan Recommendation Policy.
// Policy harus fungsi murni atas nilai ini.
type PolicyInput struct {
	Classification  Classification
	CurrentContract ContractType
	Stats           CohortStats
	StrictCohort    bool
	TenureMonths    float64
}

// PolicyResult adalah rekomendasi final engine.
type PolicyResult struct {
	RecommendedType RecommendationType `json:"recommended_type"`
	DurationMonths  int                `json:"recommended_duration_months"`
	Risk            RiskLevel          `json:"risk_level"`
	Confidence      ConfidenceLevel    `json:"confidence"`
	CategoryLabel   string             `json:"category_label"`
}
