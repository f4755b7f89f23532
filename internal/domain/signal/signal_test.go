package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParams(t *testing.T, sportKey string) Params {
	t.Helper()
	p, ok := ParamsForSport(sportKey)
	require.True(t, ok, "missing params for %s", sportKey)
	return p
}

func TestClassifyStage(t *testing.T) {
	nba := mustParams(t, SportBasketballNBA)

	tests := []struct {
		name   string
		period int
		clock  int
		want   Stage
	}{
		{"first period", 1, 700, StageEarly},
		{"second period", 2, 0, StageEarly},
		{"third period", 3, 720, StageMid},
		{"fourth period early clock", 4, 301, StageMid},
		{"fourth period at threshold", 4, 300, StageLate},
		{"fourth period final minute", 4, 55, StageLate},
		{"overtime with high clock", 5, 299, StageLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStage(nba, tt.period, tt.clock))
		})
	}
}

func TestClassifyStageLateBeyondRegulationAllSports(t *testing.T) {
	for _, sportKey := range SupportedSports() {
		p := mustParams(t, sportKey)
		for period := 4; period <= 8; period++ {
			for _, clock := range []int{0, 150, 300} {
				assert.Equal(t, StageLate, ClassifyStage(p, period, clock),
					"sport=%s period=%d clock=%d", sportKey, period, clock)
			}
		}
	}
}

func TestIsCompetitiveInclusiveThresholds(t *testing.T) {
	tests := []struct {
		sportKey string
		stage    Stage
		diff     int
		want     bool
	}{
		{SportBasketballNBA, StageEarly, 12, true},
		{SportBasketballNBA, StageEarly, 13, false},
		{SportBasketballNBA, StageMid, 10, true},
		{SportBasketballNBA, StageMid, -11, false},
		{SportBasketballNBA, StageLate, 8, true},
		{SportBasketballNBA, StageLate, 9, false},
		{SportAmericanNFL, StageEarly, 14, true},
		{SportAmericanNFL, StageEarly, -15, false},
		{SportAmericanNFL, StageMid, 11, true},
		{SportAmericanNFL, StageLate, 8, true},
		{SportAmericanNFL, StageLate, 9, false},
	}
	for _, tt := range tests {
		p := mustParams(t, tt.sportKey)
		assert.Equal(t, tt.want, IsCompetitive(p, tt.diff, tt.stage),
			"sport=%s stage=%s diff=%d", tt.sportKey, tt.stage, tt.diff)
	}
}

func TestIsCompetitiveUnknownStage(t *testing.T) {
	p := mustParams(t, SportBasketballNBA)
	assert.False(t, IsCompetitive(p, 0, Stage("halftime")))
}

func TestEstimateActivity(t *testing.T) {
	nba := mustParams(t, SportBasketballNBA)
	nfl := mustParams(t, SportAmericanNFL)

	// Under half a period of play, any score reads as medium.
	assert.Equal(t, ActivityMedium, EstimateActivity(nba, 20, 18, 1, 500))

	// Two full NBA periods elapsed: expected 110 combined points.
	assert.Equal(t, ActivityHigh, EstimateActivity(nba, 70, 60, 3, 720))
	assert.Equal(t, ActivityLow, EstimateActivity(nba, 45, 45, 3, 720))
	assert.Equal(t, ActivityMedium, EstimateActivity(nba, 55, 55, 3, 720))

	// Two full NFL periods elapsed: expected 24 combined points.
	assert.Equal(t, ActivityHigh, EstimateActivity(nfl, 21, 10, 3, 900))
	assert.Equal(t, ActivityLow, EstimateActivity(nfl, 10, 7, 3, 900))
	assert.Equal(t, ActivityMedium, EstimateActivity(nfl, 14, 10, 3, 900))
}

func TestTensionScoreBounded(t *testing.T) {
	stages := []Stage{StageEarly, StageMid, StageLate}
	for _, sportKey := range SupportedSports() {
		p := mustParams(t, sportKey)
		for diff := -80; diff <= 80; diff++ {
			for _, stage := range stages {
				for _, competitive := range []bool{false, true} {
					got := TensionScore(p, diff, stage, competitive)
					require.GreaterOrEqual(t, got, 0,
						"sport=%s diff=%d stage=%s competitive=%v", sportKey, diff, stage, competitive)
					require.LessOrEqual(t, got, 100,
						"sport=%s diff=%d stage=%s competitive=%v", sportKey, diff, stage, competitive)
				}
			}
		}
	}
}

func TestTensionScoreKnownValues(t *testing.T) {
	nba := mustParams(t, SportBasketballNBA)
	nfl := mustParams(t, SportAmericanNFL)

	// round(90 * 1.0 * 1.2) exceeds 100 and clamps.
	assert.Equal(t, 100, TensionScore(nba, 2, StageLate, true))
	// round(max(0, 100-10*7) * 0.5 * 1.25) = round(18.75).
	assert.Equal(t, 19, TensionScore(nfl, 10, StageEarly, true))
	// Blowout decays to zero before multipliers apply.
	assert.Equal(t, 0, TensionScore(nfl, 21, StageEarly, false))
	assert.Equal(t, 0, TensionScore(nba, 40, StageLate, true))
}

func TestEstimateGameClock(t *testing.T) {
	nba := mustParams(t, SportBasketballNBA)
	commence := time.Date(2026, time.January, 10, 19, 0, 0, 0, time.UTC)

	period, clock := EstimateGameClock(nba, commence, commence.Add(-10*time.Minute))
	assert.Equal(t, 1, period)
	assert.Equal(t, nba.PeriodSeconds, clock)

	period, clock = EstimateGameClock(nba, commence, commence.Add(18*time.Minute))
	assert.Equal(t, 1, period)
	assert.Equal(t, nba.PeriodSeconds/2, clock)

	period, _ = EstimateGameClock(nba, commence, commence.Add(80*time.Minute))
	assert.Equal(t, 3, period)

	period, clock = EstimateGameClock(nba, commence, commence.Add(5*time.Hour))
	assert.Equal(t, nba.RegulationPeriods, period)
	assert.Equal(t, 0, clock)
}

func TestDerivationScenarios(t *testing.T) {
	t.Run("close basketball finish", func(t *testing.T) {
		p := mustParams(t, SportBasketballNBA)
		home, away, period, clock := 98, 96, 4, 90

		stage := ClassifyStage(p, period, clock)
		require.Equal(t, StageLate, stage)

		diff := home - away
		competitive := IsCompetitive(p, diff, stage)
		require.True(t, competitive)

		tension := TensionScore(p, diff, stage, competitive)
		require.Equal(t, 100, tension)

		priority := RollupPriority(&PriorityInput{TensionScore: tension})
		assert.Equal(t, PriorityHigh, priority)
	})

	t.Run("football blowout", func(t *testing.T) {
		p := mustParams(t, SportAmericanNFL)
		home, away, period, clock := 31, 10, 2, 400

		stage := ClassifyStage(p, period, clock)
		require.Equal(t, StageEarly, stage)

		diff := home - away
		competitive := IsCompetitive(p, diff, stage)
		require.False(t, competitive)

		tension := TensionScore(p, diff, stage, competitive)
		require.Equal(t, 0, tension)

		priority := RollupPriority(&PriorityInput{TensionScore: tension})
		assert.Equal(t, PriorityLow, priority)
	})
}
