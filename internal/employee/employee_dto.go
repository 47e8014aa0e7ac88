package employee

import "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"

type EmployeeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Major          string `json:"major"`
	EducationLevel string `json:"education_level"`
	Role           string `json:"role"`
	Designation    string `json:"designation,omitempty"`
	DivisionID     string `json:"division_id,omitempty"`
	Status         string `json:"status"`
	JoinDate       string `json:"join_date"`
	ResignDate     string `json:"resign_date,omitempty"`
	ResignReason   string `json:"resign_reason,omitempty"`
	TenureMonths   float64 `json:"tenure_months"`
}

type ContractResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status"`
}

// IntelligenceResponse adalah payload dynamic intelligence untuk satu karyawan.
type IntelligenceResponse struct {
	Classification intel.Classification `json:"classification"`
	MatchCategory  string               `json:"match_category"`

	RecommendedType string `json:"recommended_type"`
	DurationMonths  int    `json:"recommended_duration_months"`
	RiskLevel       string `json:"risk_level"`
	Confidence      string `json:"confidence"`

	Stats          intel.CohortStats `json:"cohort_stats"`
	StrictProfiles int               `json:"strict_profiles"`
	BroadProfiles  int               `json:"broad_profiles"`

	Reasoning []string `json:"reasoning"`
	// DataQuality diisi kode DATA_QUALITY saat sample kohort di bawah minimum.
	// Sinyal lunak di payload, bukan error.
	DataQuality string `json:"data_quality,omitempty"`
}

type EmployeeDetailResponse struct {
	Employee     EmployeeResponse     `json:"employee"`
	Contracts    []ContractResponse   `json:"contracts"`
	Intelligence IntelligenceResponse `json:"intelligence"`
}
