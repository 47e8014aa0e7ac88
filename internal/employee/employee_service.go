package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee/errors"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const IntelligenceKeyPrefix = "employees:intel:"

// IntelligenceCacheTTL pendek karena payload berubah setiap rekomendasi diproses.
const IntelligenceCacheTTL = 15 * time.Minute

func GetIntelligenceKey(employeeID string) string {
	return IntelligenceKeyPrefix + employeeID
}

type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error)
}

type service struct {
	repo   Repository
	rules  *intel.Ruleset
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rules *intel.Ruleset, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rules:  rules,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	actor := contextutil.GetActor(ctx)
	s.logger.Debug("get all employees requested", zap.String("role", actor.Role))
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		// Manager hanya melihat karyawan divisinya sendiri
		if actor.Role == "manager" {
			if e.DivisionID == nil || e.DivisionID.String() != actor.DivisionID {
				continue
			}
		}
		res = append(res, mapToResponse(e))
	}
	return res, nil
}

func (s *service) GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("get employee detail requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("employee_id", id),
	)

	cacheKey := GetIntelligenceKey(id)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp EmployeeDetailResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				if err := s.authorizeDivision(ctx, resp.Employee.DivisionID); err != nil {
					return EmployeeDetailResponse{}, err
				}
				return resp, nil
			}
		}
	}

	// 2. Singleflight: scan kohort mahal, jangan dihitung dobel saat traffic tinggi
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildDetail(ctx, id)
		if err != nil {
			return EmployeeDetailResponse{}, err
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, IntelligenceCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return EmployeeDetailResponse{}, err
	}

	resp := v.(EmployeeDetailResponse)
	if err := s.authorizeDivision(ctx, resp.Employee.DivisionID); err != nil {
		return EmployeeDetailResponse{}, err
	}

	s.logger.Info("get employee detail success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return resp, nil
}

// authorizeDivision: manager hanya boleh melihat karyawan divisinya sendiri.
func (s *service) authorizeDivision(ctx context.Context, divisionID string) error {
	actor := contextutil.GetActor(ctx)
	if actor.Role != "manager" {
		return nil
	}
	if divisionID == "" || divisionID != actor.DivisionID {
		s.logger.Warn("manager requested employee outside division",
			zap.String("user_id", actor.UserID),
			zap.String("actor_division", actor.DivisionID),
			zap.String("employee_division", divisionID),
		)
		return employeeerrors.ErrOutsideDivision
	}
	return nil
}

func (s *service) buildDetail(ctx context.Context, id string) (EmployeeDetailResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee detail fetch failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	history, err := s.repo.FindContractHistory(ctx, id)
	if err != nil {
		s.logger.Error("get employee detail contract history failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	// Karyawan tanpa kontrak dievaluasi sebagai probation. Kontrak aktif
	// menang; bila tidak ada, pakai kontrak terbaru.
	currentType := intel.ContractProbation
	foundActive := false
	for _, c := range history {
		if c.Status == ContractStatusActive {
			currentType = c.Type
			foundActive = true
			break
		}
	}
	if !foundActive && len(history) > 0 {
		currentType = history[0].Type
	}

	classification := intel.Classify(s.rules, empl.Major, jobText(empl))
	evaluating := intel.PreliminaryType(classification, currentType)

	selection, stats, err := s.cohortStats(ctx, id, classification, evaluating)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}

	result := intel.Recommend(intel.PolicyInput{
		Classification:  classification,
		CurrentContract: currentType,
		Stats:           stats,
		StrictCohort:    selection.Strict,
		TenureMonths:    tenureMonths(empl.JoinDate, empl.ResignDate),
	})

	intelligence := IntelligenceResponse{
		Classification:  classification,
		MatchCategory:   result.CategoryLabel,
		RecommendedType: string(result.RecommendedType),
		DurationMonths:  result.DurationMonths,
		RiskLevel:       string(result.Risk),
		Confidence:      string(result.Confidence),
		Stats:           stats,
		StrictProfiles:  selection.StrictCount,
		BroadProfiles:   selection.BroadCount,
		Reasoning:       buildReasoning(empl, classification, result, selection, stats),
	}
	if stats.LowSample {
		intelligence.DataQuality = apperror.CodeDataQuality
	}

	contracts := make([]ContractResponse, len(history))
	for i, c := range history {
		contracts[i] = mapContractToResponse(c)
	}

	return EmployeeDetailResponse{
		Employee:     mapToResponse(*empl),
		Contracts:    contracts,
		Intelligence: intelligence,
	}, nil
}

func (s *service) cohortStats(
	ctx context.Context,
	targetID string,
	classification intel.Classification,
	evaluating intel.RecommendationType,
) (intel.CohortSelection, intel.CohortStats, error) {
	// Eliminasi dan permanent tidak butuh kohort
	if classification.Eliminated || evaluating == intel.RecommendNone {
		return intel.CohortSelection{}, intel.CohortStats{LowSample: true}, nil
	}

	rows, err := s.repo.ListCohortSource(ctx)
	if err != nil {
		s.logger.Error("cohort source scan failed", zap.Error(err))
		return intel.CohortSelection{}, intel.CohortStats{}, mapRepositoryError(err)
	}

	candidates := make([]intel.CohortProfile, 0, len(rows))
	for _, row := range rows {
		rowClass := intel.Classify(s.rules, row.Major, row.Role+" "+row.Designation)
		// Kriteria broad: klasifikasi match yang sama
		if rowClass.Match != classification.Match {
			continue
		}
		candidates = append(candidates, intel.CohortProfile{
			EmployeeID:          row.EmployeeID.String(),
			Match:               rowClass.Match,
			CurrentContractType: row.CurrentContractType,
			Outcome:             outcomeFor(row),
			TotalTenureMonths:   tenureMonths(row.JoinDate, row.ResignDate),
			CreatedAt:           row.CreatedAt,
		})
	}

	selection := intel.SelectCohort(candidates, targetID, evaluating)
	stats := intel.Aggregate(selection.Profiles)
	return selection, stats, nil
}

func outcomeFor(row CohortSourceRow) intel.OutcomeStatus {
	switch row.Status {
	case StatusResigned:
		return intel.OutcomeResigned
	case StatusTerminated:
		return intel.OutcomeTerminated
	}
	if row.CurrentContractType == intel.ContractPermanent {
		return intel.OutcomeReachedPermanent
	}
	return intel.OutcomeCurrentlyActive
}

func buildReasoning(
	empl *Employee,
	classification intel.Classification,
	result intel.PolicyResult,
	selection intel.CohortSelection,
	stats intel.CohortStats,
) []string {
	if classification.Eliminated {
		return []string{
			fmt.Sprintf("ELIMINASI OTOMATIS: latar belakang pendidikan Non-IT (%s) tidak sesuai untuk posisi teknologi.", empl.Major),
		}
	}
	if result.RecommendedType == intel.RecommendNone {
		return []string{"Karyawan sudah memiliki kontrak permanent."}
	}

	criteria := "broad"
	if selection.Strict {
		criteria = "strict"
	}

	reasoning := []string{
		fmt.Sprintf("Education-Job Match: %s (IT education: %t, IT role: %t)",
			result.CategoryLabel, classification.IsITEducation, classification.IsITJob),
		fmt.Sprintf("Dibandingkan dengan %d profil historis serupa (kriteria %s, strict %d / broad %d).",
			stats.SampleSize, criteria, selection.StrictCount, selection.BroadCount),
		fmt.Sprintf("Success rate historis %.1f%%, resign rate %.1f%%, early resign %.1f%%.",
			stats.SuccessRate, stats.ResignRate, stats.EarlyResignRate),
		fmt.Sprintf("Durasi rata-rata kohort %.1f bulan, rekomendasi %s %d bulan.",
			stats.AvgDurationMonths, result.RecommendedType, result.DurationMonths),
	}
	if stats.LowSample {
		reasoning = append(reasoning,
			fmt.Sprintf("Sample kohort di bawah minimum (%d < %d), confidence diturunkan.",
				stats.SampleSize, intel.MinSampleSize))
	}
	return reasoning
}

func jobText(empl *Employee) string {
	if empl.Designation == "" {
		return empl.Role
	}
	return empl.Role + " " + empl.Designation
}

// tenureMonths menghitung masa kerja dalam bulan sampai resign date,
// atau sampai sekarang bila masih aktif.
func tenureMonths(join time.Time, resign *time.Time) float64 {
	end := time.Now()
	if resign != nil {
		end = *resign
	}
	if end.Before(join) {
		return 0
	}
	months := end.Sub(join).Hours() / 24 / 30.44
	return float64(int(months*10)) / 10
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		Name:           empl.Name,
		Email:          empl.Email,
		Major:          empl.Major,
		EducationLevel: empl.EducationLevel,
		Role:           empl.Role,
		Designation:    empl.Designation,
		Status:         empl.Status,
		JoinDate:       empl.JoinDate.Format("2006-01-02"),
		ResignReason:   empl.ResignReason,
		TenureMonths:   tenureMonths(empl.JoinDate, empl.ResignDate),
	}
	if empl.DivisionID != nil {
		resp.DivisionID = empl.DivisionID.String()
	}
	if empl.ResignDate != nil {
		resp.ResignDate = empl.ResignDate.Format("2006-01-02")
	}
	return resp
}

func mapContractToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:        c.ID.String(),
		Type:      string(c.Type),
		StartDate: c.StartDate.Format("2006-01-02"),
		Status:    c.Status,
	}
	if c.EndDate != nil {
		resp.EndDate = c.EndDate.Format("2006-01-02")
	}
	return resp
}
