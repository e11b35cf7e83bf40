package boost

import "BatterBoost/internal/model"

// Total is the budget the three boosts must add up to.
const Total = 100

// PicksRequired is the number of picks a complete allocation covers.
const PicksRequired = 3

// Normalize sets target's boost to raw (clamped to 0..100) and redistributes the
// remainder over the other two picks so the three values sum to exactly Total.
//
// The remainder is split in proportion to the others' current values; when both are
// zero it is split evenly with the odd point going to the later pick. The result holds
// entries only for the three picks.
//
// Precondition: picks has exactly three ids and contains target. Otherwise current is
// returned unchanged and its sum is whatever it was; callers reject such calls first.
func Normalize(target, raw int, picks []int, current model.Boosters) model.Boosters {
	if len(picks) != PicksRequired {
		return current
	}
	var others []int
	found := false
	for _, id := range picks {
		if id == target {
			found = true
			continue
		}
		others = append(others, id)
	}
	if !found || len(others) != 2 {
		return current
	}

	clamped := clamp(raw)
	remaining := Total - clamped
	a, b := others[0], others[1]
	curA, curB := max(0, current[a]), max(0, current[b])

	var valA int
	if curA+curB <= 0 {
		valA = remaining / 2
	} else {
		valA = roundDiv(remaining*curA, curA+curB)
	}

	return model.Boosters{
		target: clamped,
		a:      valA,
		b:      remaining - valA,
	}
}

// Even returns the initial split for three picks: 34/33/33, first pick taking the remainder.
func Even(picks []int) model.Boosters {
	out := model.Boosters{}
	if len(picks) != PicksRequired {
		return out
	}
	share := Total / PicksRequired
	for _, id := range picks {
		out[id] = share
	}
	out[picks[0]] += Total - share*PicksRequired
	return out
}

// ValidateComplete reports whether exactly three picks each have a boost in 0..100
// and the boosts sum to exactly Total. A pick without an entry counts as invalid.
func ValidateComplete(picks []int, boosters model.Boosters) bool {
	if len(picks) != PicksRequired {
		return false
	}
	sum := 0
	for _, id := range picks {
		v, ok := boosters[id]
		if !ok || v < 0 || v > Total {
			return false
		}
		sum += v
	}
	return sum == Total
}

func clamp(v int) int {
	return min(Total, max(0, v))
}

// roundDiv returns num/den rounded half up, for non-negative num and positive den.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}
