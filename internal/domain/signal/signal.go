package signal

import (
	"math"
	"time"
)

// ClassifyStage maps a period number and clock-remaining seconds to a coarse
// temporal phase. Overtime (period beyond regulation) is never early: any
// period >= 4 is late once the clock is inside the final five minutes.
func ClassifyStage(p Params, period, clockRemaining int) Stage {
	switch {
	case period <= 2:
		return StageEarly
	case period == 3:
		return StageMid
	case clockRemaining > lateClockThreshold:
		return StageMid
	default:
		return StageLate
	}
}

// IsCompetitive reports whether the score margin is inside the stage's
// inclusive threshold. An unknown stage is never competitive.
func IsCompetitive(p Params, scoreDiff int, stage Stage) bool {
	threshold, ok := p.CompetitiveByStage[stage]
	if !ok {
		return false
	}
	return absInt(scoreDiff) <= threshold
}

// EstimateActivity buckets the observed scoring pace against the sport's
// expected-by-now baseline. Less than half a period elapsed is too small a
// sample and returns medium.
func EstimateActivity(p Params, homeScore, awayScore, period, clockRemaining int) ActivityLevel {
	periodLength := float64(p.PeriodSeconds)
	periodsElapsed := float64(period-1) + (periodLength-float64(clockRemaining))/periodLength
	if periodsElapsed < minPeriodsForSample {
		return ActivityMedium
	}

	expected := periodsElapsed * p.PaceBaseline
	paceFactor := float64(homeScore+awayScore) / expected
	switch {
	case paceFactor > p.PaceHighFactor:
		return ActivityHigh
	case paceFactor < p.PaceLowFactor:
		return ActivityLow
	default:
		return ActivityMedium
	}
}

// TensionScore collapses margin, stage, and competitiveness into an integer
// in [0, 100]. The competitive boost can push the raw value past 100; it is
// clamped before rounding.
func TensionScore(p Params, scoreDiff int, stage Stage, competitive bool) int {
	base := float64(100 - absInt(scoreDiff)*p.TensionDecay)
	if base < 0 {
		base = 0
	}
	value := base * p.StageMultiplier[stage]
	if competitive {
		value *= p.CompetitiveBoost
		if value > 100 {
			value = 100
		}
	}
	return int(math.Round(value))
}

// EstimateGameClock approximates (period, clockRemaining) from wall time
// elapsed since the scheduled start, using the sport's wall-period estimate.
// The score feed carries no game clock, so this is the best available input
// for stage and pace derivation. Past the estimated end of regulation the
// game pins at the final period with zero clock.
func EstimateGameClock(p Params, commence, now time.Time) (period, clockRemaining int) {
	elapsed := now.Sub(commence)
	if elapsed <= 0 {
		return 1, p.PeriodSeconds
	}

	regulation := time.Duration(p.RegulationPeriods) * p.WallPeriod
	if elapsed >= regulation {
		return p.RegulationPeriods, 0
	}

	period = 1 + int(elapsed/p.WallPeriod)
	intoPeriod := elapsed % p.WallPeriod
	fraction := float64(intoPeriod) / float64(p.WallPeriod)
	clockRemaining = int((1 - fraction) * float64(p.PeriodSeconds))
	return period, clockRemaining
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
