package recommendation

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *Recommendation) error
	FindByID(ctx context.Context, id string) (*Recommendation, error)
	FindPending(ctx context.Context) ([]PendingRow, error)
	FindProcessed(ctx context.Context) ([]Recommendation, error)
	FindProcessedByRecommender(ctx context.Context, userID string) ([]Recommendation, error)
	UpdateDecision(ctx context.Context, rec *Recommendation) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create mengandalkan partial unique index uq_recommendation_pending
// (employee_id WHERE status = 'pending') untuk invarian satu-pending-per-karyawan.
func (r *repository) Create(ctx context.Context, rec *Recommendation) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(rec).Error
	}
	_, err := r.tx.ExecContext(ctx,
		`INSERT INTO recommendations
			(id, employee_id, recommended_by, type, duration_months, reason, status, contract_start_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
		rec.ID, rec.EmployeeID, rec.RecommendedBy, rec.Type,
		rec.DurationMonths, rec.Reason, rec.Status, rec.ContractStartDate,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Recommendation, error) {
	if r.tx != nil {
		return r.findByIDTx(ctx, id)
	}
	var rec Recommendation
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

// findByIDTx mengunci baris selama transaksi pemrosesan agar dua HR tidak
// memproses rekomendasi yang sama bersamaan.
func (r *repository) findByIDTx(ctx context.Context, id string) (*Recommendation, error) {
	row := r.tx.QueryRowContext(ctx,
		`SELECT id, employee_id, recommended_by, type, duration_months, reason,
			status, hr_notes, contract_start_date, processed_by, processed_at, created_at, updated_at
		 FROM recommendations
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	)

	var rec Recommendation
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.RecommendedBy, &rec.Type,
		&rec.DurationMonths, &rec.Reason, &rec.Status, &rec.HRNotes,
		&rec.ContractStartDate, &rec.ProcessedBy, &rec.ProcessedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindPending(ctx context.Context) ([]PendingRow, error) {
	var rows []PendingRow
	err := r.db.WithContext(ctx).
		Table("recommendations r").
		Select(`r.*, e.name AS employee_name, e.major AS employee_major, e.role AS employee_role,
			(SELECT c.end_date FROM contracts c
			 WHERE c.employee_id = r.employee_id AND c.status = 'active'
			 ORDER BY c.start_date DESC LIMIT 1) AS contract_end_date`).
		Joins("JOIN employees e ON e.id = r.employee_id").
		Where("r.status = ?", StatusPending).
		Order("r.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindProcessed(ctx context.Context) ([]Recommendation, error) {
	var recs []Recommendation
	err := r.db.WithContext(ctx).
		Where("status <> ?", StatusPending).
		Order("processed_at DESC NULLS LAST, created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindProcessedByRecommender(ctx context.Context, userID string) ([]Recommendation, error) {
	var recs []Recommendation
	err := r.db.WithContext(ctx).
		Where("status <> ? AND recommended_by = ?", StatusPending, userID).
		Order("processed_at DESC NULLS LAST, created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) UpdateDecision(ctx context.Context, rec *Recommendation) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Save(rec).Error
	}
	_, err := r.tx.ExecContext(ctx,
		`UPDATE recommendations
		 SET status = $1, hr_notes = $2, processed_by = $3, processed_at = $4, updated_at = NOW()
		 WHERE id = $5`,
		rec.Status, rec.HRNotes, rec.ProcessedBy, rec.ProcessedAt, rec.ID,
	)
	return err
}

// helper untuk urgency listing
func daysUntil(t *time.Time) int {
	if t == nil {
		return -1
	}
	return int(time.Until(*t).Hours() / 24)
}
