package intel_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"

	"github.com/stretchr/testify/assert"
)

func makeProfiles(n int, contractType intel.ContractType, base time.Time) []intel.CohortProfile {
	profiles := make([]intel.CohortProfile, 0, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, intel.CohortProfile{
			EmployeeID:          fmt.Sprintf("emp-%s-%d", contractType, i),
			Match:               intel.MatchStatusMatch,
			CurrentContractType: contractType,
			Outcome:             intel.OutcomeCurrentlyActive,
			TotalTenureMonths:   12,
			CreatedAt:           base.Add(time.Duration(i) * time.Hour),
		})
	}
	return profiles
}

func TestSelectCohort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("prefers strict contract type criterion", func(t *testing.T) {
		candidates := append(
			makeProfiles(5, intel.ContractSecond, base),
			makeProfiles(10, intel.ContractFirst, base)...,
		)

		sel := intel.SelectCohort(candidates, "target", intel.RecommendKontrak2)

		assert.True(t, sel.Strict)
		assert.Equal(t, 5, sel.StrictCount)
		assert.Equal(t, 15, sel.BroadCount)
		assert.Len(t, sel.Profiles, 5)
		for _, p := range sel.Profiles {
			assert.Equal(t, intel.ContractSecond, p.CurrentContractType)
		}
	})

	t.Run("falls back to broad when strict too small", func(t *testing.T) {
		candidates := append(
			makeProfiles(2, intel.ContractSecond, base),
			makeProfiles(6, intel.ContractFirst, base)...,
		)

		sel := intel.SelectCohort(candidates, "target", intel.RecommendKontrak2)

		assert.False(t, sel.Strict)
		assert.Equal(t, 2, sel.StrictCount)
		assert.Equal(t, 8, sel.BroadCount)
		assert.Len(t, sel.Profiles, 8)
	})

	t.Run("never includes target employee", func(t *testing.T) {
		candidates := makeProfiles(4, intel.ContractSecond, base)
		candidates[0].EmployeeID = "target"

		sel := intel.SelectCohort(candidates, "target", intel.RecommendKontrak2)

		for _, p := range sel.Profiles {
			assert.NotEqual(t, "target", p.EmployeeID)
		}
		assert.Equal(t, 3, sel.BroadCount)
	})

	t.Run("caps to most recent", func(t *testing.T) {
		candidates := makeProfiles(30, intel.ContractThird, base)

		sel := intel.SelectCohort(candidates, "target", intel.RecommendKontrak3)

		assert.Len(t, sel.Profiles, intel.CohortCap)
		// paling baru dulu
		assert.Equal(t, "emp-3-29", sel.Profiles[0].EmployeeID)
		assert.Equal(t, "emp-3-10", sel.Profiles[len(sel.Profiles)-1].EmployeeID)
	})

	t.Run("terminate evaluation has no strict contract", func(t *testing.T) {
		candidates := makeProfiles(5, intel.ContractSecond, base)

		sel := intel.SelectCohort(candidates, "target", intel.RecommendTerminate)

		assert.False(t, sel.Strict)
		assert.Equal(t, 0, sel.StrictCount)
		assert.Len(t, sel.Profiles, 5)
	})

	t.Run("empty candidates", func(t *testing.T) {
		sel := intel.SelectCohort(nil, "target", intel.RecommendKontrak2)

		assert.Empty(t, sel.Profiles)
		assert.False(t, sel.Strict)
	})
}
