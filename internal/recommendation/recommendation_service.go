package recommendation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee"
	employeeerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee/errors"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/events"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/messaging/kafka"
	recommendationerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation/errors"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRecommendationRequest) (RecommendationResponse, error)
	Process(ctx context.Context, id string, req ProcessRecommendationRequest) (RecommendationResponse, error)
	Pending(ctx context.Context) ([]PendingRecommendationResponse, error)
	Processed(ctx context.Context) ([]RecommendationResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("recommendation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recommendation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateRecommendationRequest) (RecommendationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := contextutil.GetActor(ctx)
	s.logger.Debug("create recommendation requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
		zap.String("recommended_by", actor.UserID),
	)

	recType := intel.RecommendationType(req.Type)
	switch recType {
	case intel.RecommendKontrak2, intel.RecommendKontrak3, intel.RecommendPermanent, intel.RecommendTerminate:
	default:
		return RecommendationResponse{}, recommendationerrors.ErrInvalidType
	}

	if recType.RequiresDuration() && (req.DurationMonths == nil || *req.DurationMonths <= 0) {
		return RecommendationResponse{}, recommendationerrors.ErrDurationRequired
	}

	var startDate *time.Time
	if req.ContractStartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ContractStartDate)
		if err != nil {
			return RecommendationResponse{}, apperror.InvalidField("contract_start_date")
		}
		startDate = &parsed
	}

	recommendedBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return RecommendationResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create recommendation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecommendationResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecommendationResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create recommendation fetch employee failed", zap.Error(err))
		return RecommendationResponse{}, err
	}

	// Manager hanya boleh merekomendasikan karyawan divisinya sendiri
	if actor.Role == "manager" {
		if empl.DivisionID == nil || empl.DivisionID.String() != actor.DivisionID {
			s.logger.Warn("create recommendation outside division",
				zap.String("user_id", actor.UserID),
				zap.String("employee_id", req.EmployeeID),
			)
			return RecommendationResponse{}, recommendationerrors.ErrOutsideDivision
		}
	}

	rec := &Recommendation{
		ID:                uuid.New(),
		EmployeeID:        empl.ID,
		RecommendedBy:     recommendedBy,
		Type:              recType,
		DurationMonths:    req.DurationMonths,
		Reason:            req.Reason,
		Status:            StatusPending,
		ContractStartDate: startDate,
		CreatedAt:         time.Now().UTC(),
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Warn("create recommendation persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return RecommendationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create recommendation commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecommendationResponse{}, err
	}

	s.logger.Info("create recommendation success",
		zap.String("request_id", rid),
		zap.String("recommendation_id", rec.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*rec), nil
}

func (s *service) Process(ctx context.Context, id string, req ProcessRecommendationRequest) (RecommendationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := contextutil.GetActor(ctx)
	s.logger.Debug("process recommendation requested",
		zap.String("request_id", rid),
		zap.String("recommendation_id", id),
		zap.String("decision", req.Status),
		zap.String("processed_by", actor.UserID),
	)

	processedBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return RecommendationResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process recommendation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecommendationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RecommendationResponse{}, mapRepositoryError(err)
	}

	if err := ValidateTransition(rec.Status, req.Status); err != nil {
		s.logger.Warn("process recommendation invalid transition",
			zap.String("recommendation_id", id),
			zap.String("from", rec.Status),
			zap.String("to", req.Status),
		)
		return RecommendationResponse{}, err
	}

	eqtx := s.employees.WithTx(tx)

	switch req.Status {
	case StatusApproved, StatusExtended:
		if err := s.applyApproval(ctx, eqtx, rec, req); err != nil {
			return RecommendationResponse{}, err
		}
	case StatusResign:
		if err := s.applyResign(ctx, eqtx, rec, req); err != nil {
			return RecommendationResponse{}, err
		}
	case StatusRejected:
		// Tidak ada efek samping kontrak
	}

	now := time.Now().UTC()
	rec.Status = req.Status
	rec.HRNotes = req.HRNotes
	rec.ProcessedBy = &processedBy
	rec.ProcessedAt = &now

	if err := qtx.UpdateDecision(ctx, rec); err != nil {
		s.logger.Error("process recommendation update failed", zap.Error(err))
		return RecommendationResponse{}, mapRepositoryError(err)
	}

	if err := s.queueProcessedEvent(ctx, tx, rid, rec, actor.UserID); err != nil {
		return RecommendationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process recommendation commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecommendationResponse{}, err
	}

	// Payload intelligence karyawan berubah setelah keputusan
	if s.rdb != nil {
		cacheKey := employee.GetIntelligenceKey(rec.EmployeeID.String())
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate intelligence cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("process recommendation success",
		zap.String("request_id", rid),
		zap.String("recommendation_id", id),
		zap.String("decision", req.Status),
	)
	return mapToResponse(*rec), nil
}

// applyApproval membuat tepat satu kontrak baru dan menutup kontrak aktif lama.
// Untuk rekomendasi terminate, approval berarti terminasi karyawan.
func (s *service) applyApproval(
	ctx context.Context,
	eqtx employee.Repository,
	rec *Recommendation,
	req ProcessRecommendationRequest,
) error {
	if rec.Type == intel.RecommendTerminate {
		empl, err := s.employees.FindByID(ctx, rec.EmployeeID.String())
		if err != nil {
			return mapEmployeeError(err)
		}
		now := time.Now().UTC()
		empl.Status = employee.StatusTerminated
		empl.ResignDate = &now
		empl.ResignReason = terminationReason(rec.ID, req.HRNotes)
		if err := eqtx.Update(ctx, empl); err != nil {
			s.logger.Error("terminate employee failed", zap.Error(err))
			return err
		}
		return eqtx.CloseActiveContracts(ctx, rec.EmployeeID.String(), employee.ContractStatusTerminated)
	}

	contractType, ok := rec.Type.ContractFor()
	if !ok {
		return recommendationerrors.ErrInvalidType
	}

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if rec.ContractStartDate != nil {
		startDate = *rec.ContractStartDate
	}

	var endDate *time.Time
	if contractType != intel.ContractPermanent {
		if rec.DurationMonths == nil || *rec.DurationMonths <= 0 {
			return recommendationerrors.ErrDurationRequired
		}
		end := startDate.AddDate(0, *rec.DurationMonths, 0)
		endDate = &end
	}

	if err := eqtx.CloseActiveContracts(ctx, rec.EmployeeID.String(), employee.ContractStatusCompleted); err != nil {
		s.logger.Error("close active contracts failed", zap.Error(err))
		return err
	}

	contract := &employee.Contract{
		ID:         uuid.New(),
		EmployeeID: rec.EmployeeID,
		Type:       contractType,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     employee.ContractStatusActive,
	}
	if err := eqtx.CreateContract(ctx, contract); err != nil {
		s.logger.Error("create contract failed", zap.Error(err))
		return err
	}

	return nil
}

// applyResign hanya valid untuk rekomendasi terminate dan wajib membawa resign date.
func (s *service) applyResign(
	ctx context.Context,
	eqtx employee.Repository,
	rec *Recommendation,
	req ProcessRecommendationRequest,
) error {
	if rec.Type != intel.RecommendTerminate {
		return recommendationerrors.ErrResignOnlyForTerminate
	}
	if req.ResignDate == "" {
		return recommendationerrors.ErrResignDateRequired
	}
	resignDate, err := time.Parse("2006-01-02", req.ResignDate)
	if err != nil {
		return apperror.InvalidField("resign_date")
	}

	empl, err := s.employees.FindByID(ctx, rec.EmployeeID.String())
	if err != nil {
		return mapEmployeeError(err)
	}

	empl.Status = employee.StatusResigned
	empl.ResignDate = &resignDate
	empl.ResignReason = resignReason(rec.ID, req.HRNotes)

	if err := eqtx.Update(ctx, empl); err != nil {
		s.logger.Error("resign employee failed", zap.Error(err))
		return err
	}

	return eqtx.CloseActiveContracts(ctx, rec.EmployeeID.String(), employee.ContractStatusTerminated)
}

func (s *service) queueProcessedEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	rec *Recommendation,
	processedBy string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.RecommendationProcessedEvent{
		EventType:        "recommendation_processed",
		RequestID:        rid, // Propagasi ke async events
		RecommendationID: rec.ID.String(),
		EmployeeID:       rec.EmployeeID.String(),
		Decision:         rec.Status,
		ProcessedBy:      processedBy,
		OccurredAt:       time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "recommendation",
		AggregateID:   rec.ID.String(),
		EventType:     event.EventType,
		Topic:         events.RecommendationProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("process recommendation outbox persist failed",
			zap.String("recommendation_id", rec.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Pending(ctx context.Context) ([]PendingRecommendationResponse, error) {
	s.logger.Debug("pending recommendations requested")
	rows, err := s.repo.FindPending(ctx)
	if err != nil {
		s.logger.Error("pending recommendations failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]PendingRecommendationResponse, len(rows))
	for i, row := range rows {
		item := PendingRecommendationResponse{
			RecommendationResponse: mapToResponse(row.Recommendation),
			EmployeeName:           row.EmployeeName,
			EmployeeMajor:          row.EmployeeMajor,
			EmployeeRole:           row.EmployeeRole,
			Urgency:                urgencyFor(row.ContractEndDate),
		}
		if row.ContractEndDate != nil {
			item.ContractEndDate = row.ContractEndDate.Format("2006-01-02")
		}
		res[i] = item
	}
	return res, nil
}

func (s *service) Processed(ctx context.Context) ([]RecommendationResponse, error) {
	actor := contextutil.GetActor(ctx)
	s.logger.Debug("processed recommendations requested", zap.String("role", actor.Role))

	var (
		recs []Recommendation
		err  error
	)
	// Manager hanya melihat rekomendasi yang dia buat sendiri
	if actor.Role == "manager" {
		recs, err = s.repo.FindProcessedByRecommender(ctx, actor.UserID)
	} else {
		recs, err = s.repo.FindProcessed(ctx)
	}
	if err != nil {
		s.logger.Error("processed recommendations failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]RecommendationResponse, len(recs))
	for i, rec := range recs {
		res[i] = mapToResponse(rec)
	}
	return res, nil
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}

// urgencyFor: kontrak yang sudah lewat end date tetap high, bukan low.
// Hanya kontrak tanpa end date (permanent) yang low.
func urgencyFor(contractEnd *time.Time) string {
	if contractEnd == nil {
		return "low"
	}
	days := daysUntil(contractEnd)
	switch {
	case days <= 14:
		return "high"
	case days <= 30:
		return "medium"
	default:
		return "low"
	}
}

func terminationReason(recID uuid.UUID, hrNotes string) string {
	reason := fmt.Sprintf("Terminasi berdasarkan rekomendasi manager - ID: %s", recID)
	if hrNotes != "" {
		reason += " | Catatan HR: " + hrNotes
	}
	return reason
}

func resignReason(recID uuid.UUID, hrNotes string) string {
	reason := fmt.Sprintf("Resign berdasarkan keputusan HR - Rekomendasi ID: %s", recID)
	if hrNotes != "" {
		reason += " | Catatan HR: " + hrNotes
	}
	return reason
}

func mapToResponse(rec Recommendation) RecommendationResponse {
	resp := RecommendationResponse{
		ID:             rec.ID.String(),
		EmployeeID:     rec.EmployeeID.String(),
		RecommendedBy:  rec.RecommendedBy.String(),
		Type:           string(rec.Type),
		DurationMonths: rec.DurationMonths,
		Reason:         rec.Reason,
		Status:         rec.Status,
		HRNotes:        rec.HRNotes,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ContractStartDate != nil {
		resp.ContractStartDate = rec.ContractStartDate.Format("2006-01-02")
	}
	if rec.ProcessedBy != nil {
		resp.ProcessedBy = rec.ProcessedBy.String()
	}
	if rec.ProcessedAt != nil {
		resp.ProcessedAt = rec.ProcessedAt.Format(time.RFC3339)
	}
	return resp
}
