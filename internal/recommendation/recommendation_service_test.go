package recommendation_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/messaging/kafka"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecommendationRepository struct {
	withTxFn                     func(tx *sql.Tx) recommendation.Repository
	createFn                     func(ctx context.Context, rec *recommendation.Recommendation) error
	findByIDFn                   func(ctx context.Context, id string) (*recommendation.Recommendation, error)
	findPendingFn                func(ctx context.Context) ([]recommendation.PendingRow, error)
	findProcessedFn              func(ctx context.Context) ([]recommendation.Recommendation, error)
	findProcessedByRecommenderFn func(ctx context.Context, userID string) ([]recommendation.Recommendation, error)
	updateDecisionFn             func(ctx context.Context, rec *recommendation.Recommendation) error
}

func (f *fakeRecommendationRepository) WithTx(tx *sql.Tx) recommendation.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRecommendationRepository) Create(ctx context.Context, rec *recommendation.Recommendation) error {
	if f.createFn != nil {
		return f.createFn(ctx, rec)
	}
	return nil
}

func (f *fakeRecommendationRepository) FindByID(ctx context.Context, id string) (*recommendation.Recommendation, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecommendationRepository) FindPending(ctx context.Context) ([]recommendation.PendingRow, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeRecommendationRepository) FindProcessed(ctx context.Context) ([]recommendation.Recommendation, error) {
	if f.findProcessedFn != nil {
		return f.findProcessedFn(ctx)
	}
	return nil, nil
}

func (f *fakeRecommendationRepository) FindProcessedByRecommender(ctx context.Context, userID string) ([]recommendation.Recommendation, error) {
	if f.findProcessedByRecommenderFn != nil {
		return f.findProcessedByRecommenderFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRecommendationRepository) UpdateDecision(ctx context.Context, rec *recommendation.Recommendation) error {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, rec)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn             func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn               func(ctx context.Context, empl *employee.Employee) error
	createContractFn       func(ctx context.Context, contract *employee.Contract) error
	closeActiveContractsFn func(ctx context.Context, employeeID, newStatus string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindContractHistory(ctx context.Context, employeeID string) ([]employee.Contract, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) ListCohortSource(ctx context.Context) ([]employee.CohortSourceRow, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) CreateContract(ctx context.Context, contract *employee.Contract) error {
	if f.createContractFn != nil {
		return f.createContractFn(ctx, contract)
	}
	return nil
}

func (f *fakeEmployeeRepository) CloseActiveContracts(ctx context.Context, employeeID, newStatus string) error {
	if f.closeActiveContractsFn != nil {
		return f.closeActiveContractsFn(ctx, employeeID, newStatus)
	}
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func managerCtx(divisionID uuid.UUID) context.Context {
	return contextutil.WithActor(context.Background(), contextutil.Actor{
		UserID:     uuid.New().String(),
		Role:       "manager",
		DivisionID: divisionID.String(),
	})
}

func hrCtx() context.Context {
	return contextutil.WithActor(context.Background(), contextutil.Actor{
		UserID: uuid.New().String(),
		Role:   "hr",
	})
}

func activeEmployee(id, divisionID uuid.UUID) *employee.Employee {
	div := divisionID
	return &employee.Employee{
		ID:         id,
		Name:       "Dewi Lestari",
		Email:      "dewi@example.com",
		Major:      "Sistem Informasi",
		Role:       "Frontend Developer",
		DivisionID: &div,
		Status:     employee.StatusActive,
		JoinDate:   time.Now().AddDate(-1, 0, 0),
	}
}

func pendingRecommendation(recType intel.RecommendationType, duration *int) *recommendation.Recommendation {
	return &recommendation.Recommendation{
		ID:             uuid.New(),
		EmployeeID:     uuid.New(),
		RecommendedBy:  uuid.New(),
		Type:           recType,
		DurationMonths: duration,
		Status:         recommendation.StatusPending,
		CreatedAt:      time.Now().Add(-time.Hour),
	}
}

func intPtr(v int) *int { return &v }

func TestRecommendationService_Create(t *testing.T) {
	employeeID := uuid.New()
	divisionID := uuid.New()

	t.Run("success manager same division", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		var created *recommendation.Recommendation
		repo := &fakeRecommendationRepository{}
		repo.createFn = func(ctx context.Context, rec *recommendation.Recommendation) error {
			created = rec
			return nil
		}
		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, employeeID.String(), id)
			return activeEmployee(employeeID, divisionID), nil
		}

		svc := recommendation.NewService(db, repo, employees)
		resp, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID:     employeeID.String(),
			Type:           string(intel.RecommendKontrak2),
			DurationMonths: intPtr(12),
			Reason:         "Performa konsisten di atas target",
		})

		assert.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, recommendation.StatusPending, created.Status)
		assert.Equal(t, recommendation.StatusPending, resp.Status)
		assert.Equal(t, string(intel.RecommendKontrak2), resp.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid type", func(t *testing.T) {
		db, _ := newTxDB(t)
		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID: employeeID.String(),
			Type:       "kontrak9",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Recommendation type")
	})

	t.Run("negative duration required for fixed term", func(t *testing.T) {
		db, _ := newTxDB(t)
		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID: employeeID.String(),
			Type:       string(intel.RecommendKontrak3),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Duration is required")
	})

	t.Run("terminate does not require duration", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, divisionID), nil
		}

		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, employees)
		resp, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID: employeeID.String(),
			Type:       string(intel.RecommendTerminate),
			Reason:     "Evaluasi kinerja di bawah standar",
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.DurationMonths)
	})

	t.Run("negative manager outside division", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, uuid.New()), nil
		}

		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, employees)
		_, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID: employeeID.String(),
			Type:       string(intel.RecommendPermanent),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "own division")
	})

	t.Run("negative pending recommendation already exists", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeRecommendationRepository{}
		repo.createFn = func(ctx context.Context, rec *recommendation.Recommendation) error {
			return errors.New(`pq: duplicate key value violates unique constraint "uq_recommendation_pending"`)
		}
		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, divisionID), nil
		}

		svc := recommendation.NewService(db, repo, employees)
		_, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID:     employeeID.String(),
			Type:           string(intel.RecommendKontrak2),
			DurationMonths: intPtr(6),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pending recommendation")
	})

	t.Run("negative employee not found", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, &fakeEmployeeRepository{})
		_, err := svc.Create(managerCtx(divisionID), recommendation.CreateRecommendationRequest{
			EmployeeID: uuid.New().String(),
			Type:       string(intel.RecommendTerminate),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Employee not found")
	})
}

func TestRecommendationService_Process(t *testing.T) {
	t.Run("approve kontrak2 creates contract with end date", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(12))
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}
		var updated *recommendation.Recommendation
		repo.updateDecisionFn = func(ctx context.Context, r *recommendation.Recommendation) error {
			updated = r
			return nil
		}

		var closedStatus string
		var contract *employee.Contract
		employees := &fakeEmployeeRepository{}
		employees.closeActiveContractsFn = func(ctx context.Context, employeeID, newStatus string) error {
			closedStatus = newStatus
			return nil
		}
		employees.createContractFn = func(ctx context.Context, c *employee.Contract) error {
			contract = c
			return nil
		}

		outbox := &fakeOutboxRepository{}
		svc := recommendation.NewServiceWithOutbox(db, repo, employees, outbox, nil)

		resp, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status:  recommendation.StatusApproved,
			HRNotes: "Disetujui sesuai rekomendasi",
		})

		assert.NoError(t, err)
		assert.Equal(t, recommendation.StatusApproved, resp.Status)
		assert.NotEmpty(t, resp.ProcessedAt)
		assert.Equal(t, employee.ContractStatusCompleted, closedStatus)
		require.NotNil(t, contract)
		assert.Equal(t, intel.ContractSecond, contract.Type)
		require.NotNil(t, contract.EndDate)
		assert.Equal(t, contract.StartDate.AddDate(0, 12, 0), *contract.EndDate)
		require.NotNil(t, updated)
		assert.NotNil(t, updated.ProcessedBy)
		require.Len(t, outbox.created, 1)
		assert.Equal(t, "recommendation_processed", outbox.created[0].EventType)
		assert.Equal(t, rec.ID.String(), outbox.created[0].AggregateID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("approve permanent creates open ended contract", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendPermanent, nil)
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		var contract *employee.Contract
		employees := &fakeEmployeeRepository{}
		employees.createContractFn = func(ctx context.Context, c *employee.Contract) error {
			contract = c
			return nil
		}

		svc := recommendation.NewService(db, repo, employees)
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusApproved,
		})

		assert.NoError(t, err)
		require.NotNil(t, contract)
		assert.Equal(t, intel.ContractPermanent, contract.Type)
		assert.Nil(t, contract.EndDate)
	})

	t.Run("approve honors manager contract start date", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		rec := pendingRecommendation(intel.RecommendKontrak3, intPtr(18))
		rec.ContractStartDate = &start

		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		var contract *employee.Contract
		employees := &fakeEmployeeRepository{}
		employees.createContractFn = func(ctx context.Context, c *employee.Contract) error {
			contract = c
			return nil
		}

		svc := recommendation.NewService(db, repo, employees)
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusExtended,
		})

		assert.NoError(t, err)
		require.NotNil(t, contract)
		assert.Equal(t, start, contract.StartDate)
		require.NotNil(t, contract.EndDate)
		assert.Equal(t, start.AddDate(0, 18, 0), *contract.EndDate)
	})

	t.Run("approve terminate marks employee terminated", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendTerminate, nil)
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		var updatedEmployee *employee.Employee
		var closedStatus string
		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(rec.EmployeeID, uuid.New()), nil
		}
		employees.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			updatedEmployee = empl
			return nil
		}
		employees.closeActiveContractsFn = func(ctx context.Context, employeeID, newStatus string) error {
			closedStatus = newStatus
			return nil
		}
		employees.createContractFn = func(ctx context.Context, c *employee.Contract) error {
			t.Fatal("terminate approval must not create a contract")
			return nil
		}

		svc := recommendation.NewService(db, repo, employees)
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusApproved,
		})

		assert.NoError(t, err)
		require.NotNil(t, updatedEmployee)
		assert.Equal(t, employee.StatusTerminated, updatedEmployee.Status)
		assert.NotNil(t, updatedEmployee.ResignDate)
		assert.Equal(t, employee.ContractStatusTerminated, closedStatus)
	})

	t.Run("resign sets employee resigned with provided date", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendTerminate, nil)
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		var updatedEmployee *employee.Employee
		var closedStatus string
		employees := &fakeEmployeeRepository{}
		employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(rec.EmployeeID, uuid.New()), nil
		}
		employees.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			updatedEmployee = empl
			return nil
		}
		employees.closeActiveContractsFn = func(ctx context.Context, employeeID, newStatus string) error {
			closedStatus = newStatus
			return nil
		}

		svc := recommendation.NewService(db, repo, employees)
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status:     recommendation.StatusResign,
			ResignDate: "2026-09-15",
		})

		assert.NoError(t, err)
		require.NotNil(t, updatedEmployee)
		assert.Equal(t, employee.StatusResigned, updatedEmployee.Status)
		require.NotNil(t, updatedEmployee.ResignDate)
		assert.Equal(t, "2026-09-15", updatedEmployee.ResignDate.Format("2006-01-02"))
		assert.Equal(t, employee.ContractStatusTerminated, closedStatus)
	})

	t.Run("negative resign without date", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		rec := pendingRecommendation(intel.RecommendTerminate, nil)
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusResign,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Resign date is required")
	})

	t.Run("negative resign on non terminate type", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status:     recommendation.StatusResign,
			ResignDate: "2026-09-15",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only valid for terminate")
	})

	t.Run("rejected has no contract side effects", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		employees := &fakeEmployeeRepository{}
		employees.createContractFn = func(ctx context.Context, c *employee.Contract) error {
			t.Fatal("rejected decision must not create a contract")
			return nil
		}
		employees.closeActiveContractsFn = func(ctx context.Context, employeeID, newStatus string) error {
			t.Fatal("rejected decision must not close contracts")
			return nil
		}

		svc := recommendation.NewService(db, repo, employees)
		resp, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status:  recommendation.StatusRejected,
			HRNotes: "Belum ada budget perpanjangan",
		})

		assert.NoError(t, err)
		assert.Equal(t, recommendation.StatusRejected, resp.Status)
		assert.Equal(t, "Belum ada budget perpanjangan", resp.HRNotes)
	})

	t.Run("negative double process", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
		rec.Status = recommendation.StatusApproved
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusRejected,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been processed")
	})

	t.Run("negative unknown decision", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: "postponed",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Decision must be")
	})

	t.Run("negative recommendation not found", func(t *testing.T) {
		db, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := recommendation.NewService(db, &fakeRecommendationRepository{}, &fakeEmployeeRepository{})
		_, err := svc.Process(hrCtx(), uuid.New().String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusApproved,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Recommendation not found")
	})

	t.Run("process invalidates intelligence cache", func(t *testing.T) {
		db, mock := newTxDB(t)
		expectTx(mock)

		rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
		repo := &fakeRecommendationRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*recommendation.Recommendation, error) {
			return rec, nil
		}

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(employee.GetIntelligenceKey(rec.EmployeeID.String())).SetVal(1)

		svc := recommendation.NewServiceWithOutbox(db, repo, &fakeEmployeeRepository{}, nil, rdb)
		_, err := svc.Process(hrCtx(), rec.ID.String(), recommendation.ProcessRecommendationRequest{
			Status: recommendation.StatusApproved,
		})

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestRecommendationService_Listings(t *testing.T) {
	t.Run("pending computes urgency from contract end date", func(t *testing.T) {
		db, _ := newTxDB(t)

		expired := time.Now().AddDate(0, 0, -5)
		soon := time.Now().AddDate(0, 0, 7)
		later := time.Now().AddDate(0, 0, 25)
		repo := &fakeRecommendationRepository{}
		repo.findPendingFn = func(ctx context.Context) ([]recommendation.PendingRow, error) {
			return []recommendation.PendingRow{
				{
					Recommendation:  *pendingRecommendation(intel.RecommendKontrak2, intPtr(6)),
					EmployeeName:    "Dewi Lestari",
					ContractEndDate: &soon,
				},
				{
					Recommendation:  *pendingRecommendation(intel.RecommendKontrak3, intPtr(12)),
					EmployeeName:    "Rizky Pratama",
					ContractEndDate: &later,
				},
				{
					Recommendation: *pendingRecommendation(intel.RecommendTerminate, nil),
					EmployeeName:   "Agus Salim",
				},
				{
					Recommendation:  *pendingRecommendation(intel.RecommendKontrak2, intPtr(6)),
					EmployeeName:    "Sari Wulandari",
					ContractEndDate: &expired,
				},
			}, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		resp, err := svc.Pending(hrCtx())

		assert.NoError(t, err)
		require.Len(t, resp, 4)
		assert.Equal(t, "high", resp[0].Urgency)
		assert.Equal(t, "medium", resp[1].Urgency)
		assert.Equal(t, "low", resp[2].Urgency)
		// Kontrak yang sudah lewat end date paling mendesak
		assert.Equal(t, "high", resp[3].Urgency)
	})

	t.Run("processed scoped to manager own submissions", func(t *testing.T) {
		db, _ := newTxDB(t)

		managerID := uuid.New()
		repo := &fakeRecommendationRepository{}
		repo.findProcessedFn = func(ctx context.Context) ([]recommendation.Recommendation, error) {
			t.Fatal("manager listing must use the recommender scoped query")
			return nil, nil
		}
		repo.findProcessedByRecommenderFn = func(ctx context.Context, userID string) ([]recommendation.Recommendation, error) {
			assert.Equal(t, managerID.String(), userID)
			rec := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
			rec.Status = recommendation.StatusApproved
			return []recommendation.Recommendation{*rec}, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		ctx := contextutil.WithActor(context.Background(), contextutil.Actor{
			UserID: managerID.String(),
			Role:   "manager",
		})
		resp, err := svc.Processed(ctx)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, recommendation.StatusApproved, resp[0].Status)
	})

	t.Run("processed for hr returns all", func(t *testing.T) {
		db, _ := newTxDB(t)

		repo := &fakeRecommendationRepository{}
		repo.findProcessedFn = func(ctx context.Context) ([]recommendation.Recommendation, error) {
			first := pendingRecommendation(intel.RecommendKontrak2, intPtr(6))
			first.Status = recommendation.StatusApproved
			second := pendingRecommendation(intel.RecommendTerminate, nil)
			second.Status = recommendation.StatusRejected
			return []recommendation.Recommendation{*first, *second}, nil
		}

		svc := recommendation.NewService(db, repo, &fakeEmployeeRepository{})
		resp, err := svc.Processed(hrCtx())

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}

func TestValidateTransition(t *testing.T) {
	t.Run("pending accepts every terminal decision", func(t *testing.T) {
		for _, to := range []string{
			recommendation.StatusApproved,
			recommendation.StatusRejected,
			recommendation.StatusExtended,
			recommendation.StatusResign,
		} {
			assert.NoError(t, recommendation.ValidateTransition(recommendation.StatusPending, to))
		}
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		for _, from := range []string{
			recommendation.StatusApproved,
			recommendation.StatusRejected,
			recommendation.StatusExtended,
			recommendation.StatusResign,
		} {
			err := recommendation.ValidateTransition(from, recommendation.StatusApproved)
			assert.Error(t, err)
		}
	})

	t.Run("pending rejects non terminal target", func(t *testing.T) {
		err := recommendation.ValidateTransition(recommendation.StatusPending, "pending")
		assert.Error(t, err)
	})
}
