package scoring

import "BatterBoost/internal/model"

// RBI credited per home run class.
const (
	rbiSolo      = 1
	rbiTwoRun    = 2
	rbiThreeRun  = 3
	rbiGrandSlam = 4
)

// Result is the outcome of scoring one batter's raw counters.
type Result struct {
	Breakdown model.ScoreBreakdown
	Points    int
	Outcomes  []model.OutcomeCode
}

// BuildScore derives a breakdown, base points and outcome codes from raw counters.
//
// All home runs are placed in a single class picked from the average RBI per home run,
// so a solo shot and a grand slam in the same game are scored as two 2.5-RBI homers
// (three-run class). Runs are not reduced by runs scored on the batter's own home runs.
func BuildScore(raw model.RawStats) Result {
	var b model.ScoreBreakdown
	b.Singles = raw.Hits - raw.Doubles - raw.Triples - raw.HomeRuns
	b.Doubles = raw.Doubles
	b.Triples = raw.Triples
	b.Walks = raw.Walks
	b.HitByPitch = raw.HitByPitch
	b.Strikeouts = raw.Strikeouts
	b.GIDP = raw.GIDP
	b.FieldersChoice = raw.FieldersChoice

	hrRBI := 0
	if raw.HomeRuns > 0 {
		ratio := float64(raw.RBI) / float64(raw.HomeRuns)
		switch {
		case ratio >= 3.5:
			b.HRGrandSlam = raw.HomeRuns
			hrRBI = raw.HomeRuns * rbiGrandSlam
		case ratio >= 2.5:
			b.HR3Run = raw.HomeRuns
			hrRBI = raw.HomeRuns * rbiThreeRun
		case ratio >= 1.5:
			b.HR2Run = raw.HomeRuns
			hrRBI = raw.HomeRuns * rbiTwoRun
		default:
			b.HRSolo = raw.HomeRuns
			hrRBI = raw.HomeRuns * rbiSolo
		}
	}
	b.RBINonHR = max(0, raw.RBI-hrRBI)
	b.RunsNonHR = raw.Runs

	return Result{
		Breakdown: b,
		Points:    CalculateBasePoints(b),
		Outcomes:  outcomes(b),
	}
}

func outcomes(b model.ScoreBreakdown) []model.OutcomeCode {
	out := make([]model.OutcomeCode, 0)
	add := func(code model.OutcomeCode, n int) {
		for i := 0; i < n; i++ {
			out = append(out, code)
		}
	}
	add(model.OutcomeSingle, b.Singles)
	add(model.OutcomeDouble, b.Doubles)
	add(model.OutcomeTriple, b.Triples)
	add(model.OutcomeHomeRun, b.HomeRuns())
	add(model.OutcomeWalk, b.Walks)
	add(model.OutcomeStrikeout, b.Strikeouts)
	add(model.OutcomeGIDP, b.GIDP)
	return out
}

// ScorePick scores one drafted batter with its boost percent applied.
func ScorePick(batterID int, raw model.RawStats, boostPercent int) model.PlayerPickResult {
	r := BuildScore(raw)
	return model.PlayerPickResult{
		BatterID:     batterID,
		Outcomes:     r.Outcomes,
		Points:       ApplyBoost(r.Points, BoostFactor(boostPercent)),
		Breakdown:    r.Breakdown,
		BoostPercent: boostPercent,
		BasePoints:   r.Points,
	}
}

// TotalPoints sums the points of all results.
func TotalPoints(results []model.PlayerPickResult) int {
	total := 0
	for _, r := range results {
		total += r.Points
	}
	return total
}
