package recommendation

type CreateRecommendationRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required,uuid"`
	Type              string `json:"recommendation_type" binding:"required"`
	DurationMonths    *int   `json:"recommended_duration"`
	Reason            string `json:"reason"`
	ContractStartDate string `json:"contract_start_date"`
}

type ProcessRecommendationRequest struct {
	Status     string `json:"status" binding:"required"`
	HRNotes    string `json:"hr_notes"`
	ResignDate string `json:"resign_date"`
}

type RecommendationResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	RecommendedBy     string `json:"recommended_by"`
	Type              string `json:"recommendation_type"`
	DurationMonths    *int   `json:"recommended_duration,omitempty"`
	Reason            string `json:"reason,omitempty"`
	Status            string `json:"status"`
	HRNotes           string `json:"hr_notes,omitempty"`
	ContractStartDate string `json:"contract_start_date,omitempty"`
	ProcessedBy       string `json:"processed_by,omitempty"`
	ProcessedAt       string `json:"processed_at,omitempty"`
	CreatedAt         string `json:"created_at"`
}

type PendingRecommendationResponse struct {
	RecommendationResponse
	EmployeeName    string `json:"employee_name"`
	EmployeeMajor   string `json:"employee_major"`
	EmployeeRole    string `json:"employee_role"`
	ContractEndDate string `json:"contract_end_date,omitempty"`
	// Urgency dari sisa masa kontrak berjalan: high <= 14 hari, medium <= 30
	Urgency string `json:"urgency"`
}
