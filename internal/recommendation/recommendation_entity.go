package recommendation

import (
	"time"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	recommendationerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation/errors"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExtended = "extended"
	StatusResign   = "resign"
)

// terminalStatuses: semua keputusan bersifat final, tidak ada transisi keluar.
var terminalStatuses = map[string]struct{}{
	StatusApproved: {},
	StatusRejected: {},
	StatusExtended: {},
	StatusResign:   {},
}

// ValidateTransition adalah satu-satunya tempat aturan state machine berada.
// pending -> {approved, rejected, extended, resign}, semuanya terminal.
func ValidateTransition(from, to string) error {
	if _, terminal := terminalStatuses[from]; terminal {
		return recommendationerrors.ErrAlreadyProcessed
	}
	if from != StatusPending {
		return recommendationerrors.ErrInvalidStatus
	}
	if _, ok := terminalStatuses[to]; !ok {
		return recommendationerrors.ErrInvalidDecision
	}
	return nil
}

type Recommendation struct {
	ID             uuid.UUID                `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID                `gorm:"type:uuid;index"`
	RecommendedBy  uuid.UUID                `gorm:"type:uuid"`
	Type           intel.RecommendationType `gorm:"column:type"`
	DurationMonths *int                     `gorm:"column:duration_months"`
	Reason         string                   `gorm:"column:reason"`
	Status         string                   `gorm:"column:status"`
	HRNotes        string                   `gorm:"column:hr_notes"`
	// ContractStartDate opsional dari manager; default hari pemrosesan
	ContractStartDate *time.Time `gorm:"column:contract_start_date"`
	ProcessedBy       *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt       *time.Time `gorm:"column:processed_at"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PendingRow adalah baris listing pending beserta data urgency.
type PendingRow struct {
	Recommendation
	EmployeeName    string
	EmployeeMajor   string
	EmployeeRole    string
	ContractEndDate *time.Time
}
