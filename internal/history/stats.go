package history

import (
	"math"

	"BatterBoost/internal/model"
)

// ComputeStats derives the aggregates from scratch over games in their stored order.
//
// Ties are resolved by iteration order: BestGame is the first game reaching the best
// score, and among names sharing the highest pick count FavoritePlayer is the one
// that appears first. Placeholder and fallback names are not counted as favorites.
func ComputeStats(games []model.HistoricalGame) model.HistoryStats {
	stats := model.HistoryStats{TotalGames: len(games)}

	var sum, n int
	seenScore := false
	counts := map[string]int{}
	var order []string

	for _, g := range games {
		for _, p := range g.Players {
			sum += p.TotalScore
			n++
			if !seenScore || p.TotalScore > stats.BestScore {
				stats.BestScore = p.TotalScore
				stats.BestGame = g.ID
				seenScore = true
			}
			for _, pick := range p.Picks {
				if !namedPick(pick) {
					continue
				}
				if counts[pick.BatterName] == 0 {
					order = append(order, pick.BatterName)
				}
				counts[pick.BatterName]++
			}
		}
	}
	bestCount := 0
	for _, name := range order {
		if counts[name] > bestCount {
			bestCount = counts[name]
			stats.FavoritePlayer = name
		}
	}
	if n > 0 {
		stats.AverageScore = math.Round(float64(sum)/float64(n)*10) / 10
	}
	return stats
}

// namedPick reports whether the pick was made on a real, resolved batter name.
func namedPick(pick model.HistoricalPick) bool {
	return pick.BatterName != "" && pick.BatterName != model.PlaceholderName && pick.BatterName != fallbackName(pick.BatterID)
}
