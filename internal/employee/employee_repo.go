package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindContractHistory(ctx context.Context, employeeID string) ([]Contract, error)
	ListCohortSource(ctx context.Context) ([]CohortSourceRow, error)
	Update(ctx context.Context, empl *Employee) error
	CreateContract(ctx context.Context, contract *Contract) error
	CloseActiveContracts(ctx context.Context, employeeID, newStatus string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindContractHistory(ctx context.Context, employeeID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) ListCohortSource(ctx context.Context) ([]CohortSourceRow, error) {
	var rows []CohortSourceRow
	err := r.db.WithContext(ctx).
		Table("employees e").
		Select(`e.id AS employee_id, e.major, e.role, e.designation, e.status,
			e.join_date, e.resign_date, e.created_at,
			COALESCE((
				SELECT c.type FROM contracts c
				WHERE c.employee_id = e.id
				ORDER BY CASE WHEN c.status = 'active' THEN 0 ELSE 1 END, c.start_date DESC
				LIMIT 1
			), 'probation') AS current_contract_type`).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Save(empl).Error
	}
	_, err := r.tx.ExecContext(ctx,
		`UPDATE employees
		 SET status = $1, resign_date = $2, resign_reason = $3, updated_at = NOW()
		 WHERE id = $4`,
		empl.Status, empl.ResignDate, empl.ResignReason, empl.ID,
	)
	return err
}

func (r *repository) CreateContract(ctx context.Context, contract *Contract) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(contract).Error
	}
	_, err := r.tx.ExecContext(ctx,
		`INSERT INTO contracts (id, employee_id, type, start_date, end_date, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		contract.ID, contract.EmployeeID, contract.Type,
		contract.StartDate, contract.EndDate, contract.Status,
	)
	return err
}

func (r *repository) CloseActiveContracts(ctx context.Context, employeeID, newStatus string) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).
			Model(&Contract{}).
			Where("employee_id = ? AND status = ?", employeeID, ContractStatusActive).
			Update("status", newStatus).Error
	}
	_, err := r.tx.ExecContext(ctx,
		`UPDATE contracts SET status = $1 WHERE employee_id = $2 AND status = 'active'`,
		newStatus, employeeID,
	)
	return err
}
