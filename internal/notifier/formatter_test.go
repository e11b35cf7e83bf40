package notifier

import (
	"strings"
	"testing"

	"BatterBoost/internal/model"
)

func sampleState() model.AppState {
	st := model.NewAppState()
	st.Batters[0].Name = "Buxton"
	st.Batters[1].Name = "Correa & Co"
	st.Players[0].Picks = []int{1, 2, 3}
	st.Boosters = model.Boosters{1: 34, 2: 33, 3: 33}
	st.LineupInfo = &model.LineupInfo{Opponent: "Guardians", Side: model.SideAway, FirstPitchLocal: "6:10 PM"}
	return st
}

func TestFormatLineup(t *testing.T) {
	msg := FormatLineup(sampleState(), "feed down")
	for _, want := range []string{"@ Guardians | 6:10 PM", "✅ 1. Buxton", "Correa &amp; Co", "9. TBD", "⚠️ feed down"} {
		if !strings.Contains(msg, want) {
			t.Errorf("lineup missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatBoosts(t *testing.T) {
	msg := FormatBoosts(sampleState())
	if !strings.Contains(msg, "1. Buxton: 34%") || !strings.Contains(msg, "Total: 100%") {
		t.Errorf("unexpected boosts message:\n%s", msg)
	}
	if got := FormatBoosts(model.NewAppState()); got != "No batters drafted yet." {
		t.Errorf("empty boosts = %q", got)
	}
}

func TestFormatLive(t *testing.T) {
	st := sampleState()
	st.GameState = model.GameStateLive
	st.InningStr = "Top 3rd"
	st.PreviousScores = map[int]int{1: 100}
	st.PreviousTotalScore = 100
	st.Players[0].Results = []model.PlayerPickResult{
		{BatterID: 1, Points: 500, BoostPercent: 34, Outcomes: []model.OutcomeCode{model.OutcomeHomeRun}},
	}
	st.Players[0].Score = 500

	msg := FormatLive(st)
	for _, want := range []string{"Top 3rd", "Buxton (34%): 500 (+400) [HR]", "Total: <b>500</b> (+400)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("live missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatStats(t *testing.T) {
	msg := FormatStats(model.HistoryStats{TotalGames: 2, AverageScore: 120.5, BestScore: 300, FavoritePlayer: "Buxton"})
	for _, want := range []string{"Games: 2", "Average: 120.5", "Best: 300", "Favorite: Buxton"} {
		if !strings.Contains(msg, want) {
			t.Errorf("stats missing %q:\n%s", want, msg)
		}
	}
	if got := FormatStats(model.HistoryStats{}); got != "No games played yet." {
		t.Errorf("empty stats = %q", got)
	}
}

func TestFormatHistory(t *testing.T) {
	games := []model.HistoricalGame{{
		Date:       "2026-06-10",
		Opponent:   "Guardians",
		FinalScore: &model.FinalScore{Team: 5, Opponent: 3},
		Players:    []model.HistoricalPlayer{{Name: "You", TotalScore: 420}},
	}}
	msg := FormatHistory(games)
	if !strings.Contains(msg, "2026-06-10 vs Guardians: 420 (5-3)") {
		t.Errorf("unexpected history:\n%s", msg)
	}
}
