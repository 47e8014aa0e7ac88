package events

import "time"

const RecommendationProcessedTopic = "hr.recommendation.processed.v1"

type RecommendationProcessedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	RecommendationID string    `json:"recommendation_id"`
	EmployeeID       string    `json:"employee_id"`
	Decision         string    `json:"decision"`
	ProcessedBy      string    `json:"processed_by"`
	OccurredAt       time.Time `json:"occurred_at"`
}
