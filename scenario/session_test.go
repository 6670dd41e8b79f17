package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tifye/climateclock/climate"
)

func finalOnly(flood, drought float64) climate.Result {
	return climate.Result{{Year: climate.BaseYear, FloodRisk: flood, DroughtRisk: drought}}
}

func TestSessionDefaults(t *testing.T) {
	s := NewSession()
	state := s.State()

	assert.Equal(t, ModeStandard, state.Mode)
	assert.Equal(t, climate.Defaults(), state.Parameters)
	assert.False(t, state.Challenge)
	assert.Equal(t, DifficultyMedium, state.Difficulty)
	assert.False(t, state.Won)
	assert.False(t, state.CompareEnabled)
	assert.Empty(t, state.SavedSlots)
}

func TestSetParametersKidsOverride(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeKids)

	p := climate.Defaults()
	p.UrbanizationPct = 90
	effective := s.SetParameters(p)

	assert.Equal(t, KidsUrbanizationPct, effective.UrbanizationPct)
	assert.Equal(t, KidsUrbanizationPct, s.Parameters().UrbanizationPct)
}

func TestSetModeKidsAppliesOverrideImmediately(t *testing.T) {
	s := NewSession()
	p := climate.Defaults()
	p.UrbanizationPct = 90
	s.SetParameters(p)

	effective := s.SetMode(ModeKids)
	assert.Equal(t, KidsUrbanizationPct, effective.UrbanizationPct)

	// leaving kids mode does not restore the old value
	effective = s.SetMode(ModeStandard)
	assert.Equal(t, KidsUrbanizationPct, effective.UrbanizationPct)
}

func TestApplyPreset(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeKids)
	s.SetChallenge(true, DifficultyEasy)
	_, justWon := s.EvaluateChallenge(finalOnly(10, 10))
	require.True(t, justWon)

	p, ok := s.ApplyPreset(climate.PresetBusiness)
	require.True(t, ok)
	assert.Equal(t, climate.Parameters{HorizonYears: 80, CO2PPM: 650, RainfallChangePct: 10, GreenInfraPct: 10, UrbanizationPct: 65}, p)
	assert.Equal(t, ModeStandard, s.Mode())
	assert.False(t, s.Won())

	_, ok = s.ApplyPreset("atlantis")
	assert.False(t, ok)
}

func TestEvaluateChallengeWinEdge(t *testing.T) {
	s := NewSession()
	s.SetChallenge(true, DifficultyMedium)

	passing := finalOnly(38, 35)

	status, justWon := s.EvaluateChallenge(passing)
	assert.True(t, justWon)
	assert.True(t, status.Won)
	assert.True(t, status.FloodOK)
	assert.True(t, status.DroughtOK)
	assert.Equal(t, 40.0, status.TargetFlood)
	assert.Equal(t, 40.0, status.TargetDrought)

	// same result again: still winning, no second event
	status, justWon = s.EvaluateChallenge(passing)
	assert.False(t, justWon)
	assert.True(t, status.Won)

	// violate one target: silent drop back to NotWon
	status, justWon = s.EvaluateChallenge(finalOnly(38, 60))
	assert.False(t, justWon)
	assert.False(t, status.Won)
	assert.True(t, status.FloodOK)
	assert.False(t, status.DroughtOK)

	// winning again emits a fresh event
	_, justWon = s.EvaluateChallenge(passing)
	assert.True(t, justWon)
}

func TestEvaluateChallengeTargetsInclusive(t *testing.T) {
	s := NewSession()
	s.SetChallenge(true, DifficultyHard)

	status, justWon := s.EvaluateChallenge(finalOnly(30, 30))
	assert.True(t, justWon)
	assert.True(t, status.Won)
}

func TestEvaluateChallengeDisabled(t *testing.T) {
	s := NewSession()

	status, justWon := s.EvaluateChallenge(finalOnly(1, 1))
	assert.False(t, justWon)
	assert.False(t, status.Won)
	assert.False(t, s.Won())
}

func TestDifficultyTargets(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		flood      float64
		drought    float64
	}{
		{DifficultyEasy, 55, 55},
		{DifficultyMedium, 40, 40},
		{DifficultyHard, 30, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			flood, drought := tt.difficulty.Targets()
			assert.Equal(t, tt.flood, flood)
			assert.Equal(t, tt.drought, drought)
		})
	}
}

func TestResetChallenge(t *testing.T) {
	s := NewSession()
	s.SetChallenge(true, DifficultyEasy)
	_, justWon := s.EvaluateChallenge(finalOnly(10, 10))
	require.True(t, justWon)

	s.ResetChallenge()

	state := s.State()
	assert.False(t, state.Won)
	assert.Equal(t, DifficultyMedium, state.Difficulty)
	assert.True(t, state.Challenge, "reset calibration keeps the challenge enabled")
}

func TestCompare(t *testing.T) {
	s := NewSession()

	_, err := s.Compare()
	assert.ErrorIs(t, err, ErrIncompleteComparison)

	a := climate.Parameters{HorizonYears: 80, CO2PPM: 650, RainfallChangePct: 10, GreenInfraPct: 10, UrbanizationPct: 65}
	s.SaveSnapshot(SlotA, a, climate.Simulate(a))

	_, err = s.Compare()
	assert.ErrorIs(t, err, ErrIncompleteComparison)

	b := climate.Parameters{HorizonYears: 80, CO2PPM: 380, RainfallChangePct: 5, GreenInfraPct: 70, UrbanizationPct: 30}
	s.SaveSnapshot(SlotB, b, climate.Simulate(b))

	deltas, err := s.Compare()
	require.NoError(t, err)

	fa := climate.Simulate(a).Final()
	fb := climate.Simulate(b).Final()
	assert.InDelta(t, fb.TempAnomalyC-fa.TempAnomalyC, deltas.TempAnomalyC, 1e-12)
	assert.InDelta(t, fb.FloodRisk-fa.FloodRisk, deltas.FloodRisk, 1e-12)
	assert.InDelta(t, fb.DroughtRisk-fa.DroughtRisk, deltas.DroughtRisk, 1e-12)
}

func TestSaveSnapshotCopiesResult(t *testing.T) {
	s := NewSession()
	p := climate.Defaults()
	res := climate.Simulate(p)

	s.SaveSnapshot(SlotA, p, res)
	res[len(res)-1].FloodRisk = -1

	snap, ok := s.Snapshot(SlotA)
	require.True(t, ok)
	assert.NotEqual(t, -1.0, snap.Result.Final().FloodRisk)
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	s := NewSession()
	p1 := climate.Defaults()
	s.SaveSnapshot(SlotA, p1, climate.Simulate(p1))

	p2 := p1
	p2.CO2PPM = 900
	s.SaveSnapshot(SlotA, p2, climate.Simulate(p2))

	snap, ok := s.Snapshot(SlotA)
	require.True(t, ok)
	assert.Equal(t, 900, snap.Params.CO2PPM)
}

func TestClearSnapshots(t *testing.T) {
	s := NewSession()
	p := climate.Defaults()
	res := climate.Simulate(p)
	s.SaveSnapshot(SlotA, p, res)
	s.SaveSnapshot(SlotB, p, res)

	s.ClearSnapshots()

	_, okA := s.Snapshot(SlotA)
	_, okB := s.Snapshot(SlotB)
	assert.False(t, okA)
	assert.False(t, okB)
}

func TestResetRestoresEverything(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeKids)
	s.SetParameters(climate.Parameters{HorizonYears: 120, CO2PPM: 900, RainfallChangePct: 50, GreenInfraPct: 100, UrbanizationPct: 100})
	s.SetChallenge(true, DifficultyHard)
	s.SetCompare(true)
	p := s.Parameters()
	res := climate.Simulate(p)
	s.SaveSnapshot(SlotA, p, res)
	s.SaveSnapshot(SlotB, p, res)
	s.EvaluateChallenge(finalOnly(1, 1))

	s.Reset()

	fresh := NewSession()
	assert.Equal(t, fresh.State(), s.State())
}
