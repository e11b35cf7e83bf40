package scoring

import (
	"math"

	"BatterBoost/internal/model"
)

// Point values per counter.
const (
	PointsSingle         = 10
	PointsDouble         = 20
	PointsTriple         = 30
	PointsHRSolo         = 40
	PointsHR2Run         = 45
	PointsHR3Run         = 50
	PointsHRGrandSlam    = 80
	PointsWalk           = 5
	PointsHitByPitch     = 5
	PointsRBINonHR       = 15
	PointsRunNonHR       = 15
	PointsStrikeout      = -5
	PointsGIDP           = -10
	PointsFieldersChoice = 2
)

// CalculateBasePoints returns the weighted sum of the breakdown. The result is not clamped.
func CalculateBasePoints(b model.ScoreBreakdown) int {
	return b.Singles*PointsSingle +
		b.Doubles*PointsDouble +
		b.Triples*PointsTriple +
		b.HRSolo*PointsHRSolo +
		b.HR2Run*PointsHR2Run +
		b.HR3Run*PointsHR3Run +
		b.HRGrandSlam*PointsHRGrandSlam +
		b.Walks*PointsWalk +
		b.HitByPitch*PointsHitByPitch +
		b.RBINonHR*PointsRBINonHR +
		b.RunsNonHR*PointsRunNonHR +
		b.Strikeouts*PointsStrikeout +
		b.GIDP*PointsGIDP +
		b.FieldersChoice*PointsFieldersChoice
}

// ApplyBoost multiplies positive base points by factor and rounds.
// Zero and negative scores are returned unchanged.
func ApplyBoost(basePoints int, factor float64) int {
	if basePoints <= 0 {
		return basePoints
	}
	return int(math.Round(float64(basePoints) * factor))
}

// BoostFactor converts a stored boost percent into the multiplier used by ApplyBoost.
// The percent is used as a whole multiplier: 33% multiplies by 33, 100% by 100.
func BoostFactor(percent int) float64 {
	return float64(percent)
}
