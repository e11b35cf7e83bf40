package history

import (
	"testing"

	"BatterBoost/internal/model"
)

func game(id string, players ...model.HistoricalPlayer) model.HistoricalGame {
	return model.HistoricalGame{ID: id, Players: players}
}

func hp(total int, names ...string) model.HistoricalPlayer {
	p := model.HistoricalPlayer{TotalScore: total}
	for _, n := range names {
		p.Picks = append(p.Picks, model.HistoricalPick{BatterName: n})
	}
	return p
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (model.HistoryStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestComputeStats_AverageRoundsToOneDecimal(t *testing.T) {
	stats := ComputeStats([]model.HistoricalGame{
		game("a", hp(10)), game("b", hp(10)), game("c", hp(11)),
	})
	if stats.AverageScore != 10.3 {
		t.Errorf("expected 10.3, got %v", stats.AverageScore)
	}
	if stats.TotalGames != 3 {
		t.Errorf("expected 3 games, got %d", stats.TotalGames)
	}
}

func TestComputeStats_BestGameFirstToReachMax(t *testing.T) {
	stats := ComputeStats([]model.HistoricalGame{
		game("newest", hp(80)), game("middle", hp(120)), game("oldest", hp(120)),
	})
	if stats.BestScore != 120 || stats.BestGame != "middle" {
		t.Errorf("expected first game with 120, got %d %q", stats.BestScore, stats.BestGame)
	}

	neg := ComputeStats([]model.HistoricalGame{game("x", hp(-20)), game("y", hp(-5))})
	if neg.BestScore != -5 || neg.BestGame != "y" {
		t.Errorf("expected best of all-negative scores, got %d %q", neg.BestScore, neg.BestGame)
	}
}

func TestComputeStats_FavoritePlayerTieBreak(t *testing.T) {
	stats := ComputeStats([]model.HistoricalGame{
		game("g1", hp(0, "Buxton", "Correa")),
		game("g2", hp(0, "Correa", "Buxton", "Lewis")),
	})
	if stats.FavoritePlayer != "Buxton" {
		t.Errorf("expected tie to go to first-seen name Buxton, got %q", stats.FavoritePlayer)
	}

	stats = ComputeStats([]model.HistoricalGame{
		game("g1", hp(0, "Buxton")),
		game("g2", hp(0, "Lewis", "Lewis")),
	})
	if stats.FavoritePlayer != "Lewis" {
		t.Errorf("expected most-picked Lewis, got %q", stats.FavoritePlayer)
	}
}

func TestComputeStats_FavoritePlayerIgnoresUnnamedPicks(t *testing.T) {
	unresolved := hp(0)
	unresolved.Picks = append(unresolved.Picks,
		model.HistoricalPick{BatterID: 4, BatterName: "Batter 4"},
		model.HistoricalPick{BatterID: 4, BatterName: "Batter 4"})
	stats := ComputeStats([]model.HistoricalGame{
		game("g1", hp(0, model.PlaceholderName, model.PlaceholderName, "Buxton")),
		game("g2", hp(0, model.PlaceholderName, model.PlaceholderName)),
		game("g3", unresolved),
	})
	if stats.FavoritePlayer != "Buxton" {
		t.Errorf("expected Buxton over placeholder names, got %q", stats.FavoritePlayer)
	}

	stats = ComputeStats([]model.HistoricalGame{game("g1", hp(0, model.PlaceholderName))})
	if stats.FavoritePlayer != "" {
		t.Errorf("expected no favorite from placeholder picks only, got %q", stats.FavoritePlayer)
	}
}
