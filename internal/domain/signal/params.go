package signal

import "time"

type Stage string

const (
	StageEarly Stage = "early"
	StageMid   Stage = "mid"
	StageLate  Stage = "late"
)

type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

const (
	SportBasketballNBA  = "basketball_nba"
	SportAmericanNFL    = "americanfootball_nfl"
	lateClockThreshold  = 300
	minPeriodsForSample = 0.5
)

// Params holds every per-sport constant the derivation pipeline reads.
// Adding a sport is a pure data addition here; none of the scoring functions
// branch on sport identity directly.
type Params struct {
	SportKey          string
	League            string
	PeriodSeconds     int
	RegulationPeriods int
	// WallPeriod approximates how much wall-clock time one period of play
	// spans, stoppages included. Used only to estimate (period, clock) from
	// elapsed real time when the score feed carries no game clock.
	WallPeriod time.Duration

	// CompetitiveByStage is the inclusive |scoreDiff| threshold per stage.
	CompetitiveByStage map[Stage]int

	// TensionDecay is the per-point decay K in max(0, 100 - |diff|*K).
	TensionDecay     int
	StageMultiplier  map[Stage]float64
	CompetitiveBoost float64

	// PaceBaseline is expected combined points per period.
	PaceBaseline   float64
	PaceHighFactor float64
	PaceLowFactor  float64

	// MomentumSwing is the margin delta between consecutive snapshots that
	// counts as a momentum shift.
	MomentumSwing int
}

var paramsBySport = map[string]Params{
	SportBasketballNBA: {
		SportKey:          SportBasketballNBA,
		League:            "NBA",
		PeriodSeconds:     720,
		RegulationPeriods: 4,
		WallPeriod:        36 * time.Minute,
		CompetitiveByStage: map[Stage]int{
			StageEarly: 12,
			StageMid:   10,
			StageLate:  8,
		},
		TensionDecay: 5,
		StageMultiplier: map[Stage]float64{
			StageEarly: 0.6,
			StageMid:   0.8,
			StageLate:  1.0,
		},
		CompetitiveBoost: 1.2,
		PaceBaseline:     55,
		PaceHighFactor:   1.15,
		PaceLowFactor:    0.85,
		MomentumSwing:    8,
	},
	SportAmericanNFL: {
		SportKey:          SportAmericanNFL,
		League:            "NFL",
		PeriodSeconds:     900,
		RegulationPeriods: 4,
		WallPeriod:        48 * time.Minute,
		CompetitiveByStage: map[Stage]int{
			StageEarly: 14,
			StageMid:   11,
			StageLate:  8,
		},
		TensionDecay: 7,
		StageMultiplier: map[Stage]float64{
			StageEarly: 0.5,
			StageMid:   0.75,
			StageLate:  1.0,
		},
		CompetitiveBoost: 1.25,
		PaceBaseline:     12,
		PaceHighFactor:   1.25,
		PaceLowFactor:    0.75,
		MomentumSwing:    7,
	},
}

// ParamsForSport returns the constant table for a sport key.
func ParamsForSport(sportKey string) (Params, bool) {
	p, ok := paramsBySport[sportKey]
	return p, ok
}

// SupportedSports returns the sport keys with a parameter table, in a fixed
// order.
func SupportedSports() []string {
	return []string{SportBasketballNBA, SportAmericanNFL}
}

// LeagueForSport maps a sport key to its league label, empty when unknown.
func LeagueForSport(sportKey string) string {
	if p, ok := paramsBySport[sportKey]; ok {
		return p.League
	}
	return ""
}
