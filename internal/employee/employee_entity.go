package employee

import (
	"time"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"

	"github.com/google/uuid"
)

const (
	StatusActive     = "active"
	StatusProbation  = "probation"
	StatusResigned   = "resigned"
	StatusTerminated = "terminated"
)

const (
	ContractStatusActive     = "active"
	ContractStatusCompleted  = "completed"
	ContractStatusTerminated = "terminated"
	ContractStatusExtended   = "extended"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"column:name"`
	Email          string     `gorm:"uniqueIndex"`
	Major          string     `gorm:"column:major"`
	EducationLevel string     `gorm:"column:education_level"`
	Role           string     `gorm:"column:role"`
	Designation    string     `gorm:"column:designation"`
	DivisionID     *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"column:status"`
	JoinDate       time.Time  `gorm:"column:join_date"`
	ResignDate     *time.Time `gorm:"column:resign_date"`
	ResignReason   string     `gorm:"column:resign_reason"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contract bersifat append-only: perubahan status kontrak berjalan dicatat
// lewat kolom status, bukan dengan menimpa baris lama.
type Contract struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;index"`
	Type       intel.ContractType `gorm:"column:type"`
	StartDate  time.Time          `gorm:"column:start_date"`
	// EndDate NULL untuk kontrak permanent
	EndDate   *time.Time `gorm:"column:end_date"`
	Status    string     `gorm:"column:status"`
	CreatedAt time.Time
}

// CohortSourceRow adalah baris mentah populasi historis untuk seleksi kohort.
// Klasifikasi match dihitung di service, bukan di database.
type CohortSourceRow struct {
	EmployeeID          uuid.UUID
	Major               string
	Role                string
	Designation         string
	Status              string
	JoinDate            time.Time
	ResignDate          *time.Time
	CurrentContractType intel.ContractType
	CreatedAt           time.Time
}
