package notifier

import (
	"fmt"
	"html"
	"strings"

	"BatterBoost/internal/model"
)

// HelpText lists the bot commands.
const HelpText = `⚾ <b>BatterBoost</b>

/lineup - load today's lineup
/rename &lt;slot&gt; &lt;name&gt; - rename a batter
/draft - start drafting
/pick &lt;slot&gt; - pick or unpick a batter
/done - finish the draft
/boost &lt;slot&gt; &lt;percent&gt; - set a boost
/live - start live scoring
/stop - stop live scoring
/score - show the current score
/history - recent games
/stats - all-time stats
/reset - start over`

func batterName(st model.AppState, id int) string {
	if b, ok := model.FindBatter(st.Batters, id); ok {
		return html.EscapeString(b.Name)
	}
	return fmt.Sprintf("Batter %d", id)
}

func matchup(info *model.LineupInfo) string {
	if info == nil || info.Opponent == "" {
		return ""
	}
	prep := "vs"
	if info.Side == model.SideAway {
		prep = "@"
	}
	line := fmt.Sprintf("%s %s", prep, html.EscapeString(info.Opponent))
	if info.FirstPitchLocal != "" {
		line += " | " + info.FirstPitchLocal
	}
	return line
}

// FormatLineup renders the nine lineup slots.
func FormatLineup(st model.AppState, warning string) string {
	var b strings.Builder
	b.WriteString("📋 <b>Lineup</b>")
	if m := matchup(st.LineupInfo); m != "" {
		b.WriteString(" " + m)
	}
	b.WriteString("\n\n")
	p := st.Player()
	for _, bat := range st.Batters {
		mark := "  "
		if p != nil && p.HasPick(bat.ID) {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, bat.ID, html.EscapeString(bat.Name)))
	}
	if warning != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", html.EscapeString(warning)))
	}
	return b.String()
}

// FormatBoosts renders the drafted batters with their boost split.
func FormatBoosts(st model.AppState) string {
	p := st.Player()
	if p == nil || len(p.Picks) == 0 {
		return "No batters drafted yet."
	}
	var b strings.Builder
	b.WriteString("🚀 <b>Boosts</b>\n\n")
	total := 0
	for _, id := range p.Picks {
		v := st.Boosters[id]
		total += v
		b.WriteString(fmt.Sprintf("%d. %s: %d%%\n", id, batterName(st, id), v))
	}
	b.WriteString(fmt.Sprintf("\nTotal: %d%%", total))
	return b.String()
}

// FormatLive renders the running score with per-pick changes since the last update.
func FormatLive(st model.AppState) string {
	p := st.Player()
	if p == nil {
		return "No game in progress."
	}
	var b strings.Builder
	header := "🔴 <b>Live</b>"
	if st.GameState == model.GameStateFinal {
		header = "🏁 <b>Final</b>"
	}
	b.WriteString(header)
	if st.InningStr != "" && st.GameState != model.GameStateFinal {
		b.WriteString(" | " + st.InningStr)
	}
	b.WriteString("\n\n")
	for _, r := range p.Results {
		line := fmt.Sprintf("%s (%d%%): %d", batterName(st, r.BatterID), r.BoostPercent, r.Points)
		if prev, ok := st.PreviousScores[r.BatterID]; ok && prev != r.Points {
			line += fmt.Sprintf(" (%+d)", r.Points-prev)
		}
		if len(r.Outcomes) > 0 {
			codes := make([]string, len(r.Outcomes))
			for i, o := range r.Outcomes {
				codes[i] = string(o)
			}
			line += " [" + strings.Join(codes, " ") + "]"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nTotal: <b>%d</b>", p.Score))
	if delta := p.Score - st.PreviousTotalScore; delta != 0 && st.PreviousTotalScore != 0 {
		b.WriteString(fmt.Sprintf(" (%+d)", delta))
	}
	return b.String()
}

// FormatResults renders the final score once the game is over.
func FormatResults(st model.AppState) string {
	p := st.Player()
	if p == nil {
		return "No results."
	}
	var b strings.Builder
	b.WriteString("🏁 <b>Game over</b>")
	if m := matchup(st.LineupInfo); m != "" {
		b.WriteString(" " + m)
	}
	b.WriteString("\n\n")
	for _, r := range p.Results {
		b.WriteString(fmt.Sprintf("%s: %d base → %d boosted\n", batterName(st, r.BatterID), r.BasePoints, r.Points))
	}
	b.WriteString(fmt.Sprintf("\nFinal score: <b>%d</b>", p.Score))
	return b.String()
}

// FormatHistory renders the most recent archived games.
func FormatHistory(games []model.HistoricalGame) string {
	if len(games) == 0 {
		return "No games played yet."
	}
	var b strings.Builder
	b.WriteString("📚 <b>Recent games</b>\n\n")
	for _, g := range games {
		score := 0
		if len(g.Players) > 0 {
			score = g.Players[0].TotalScore
		}
		line := fmt.Sprintf("%s vs %s: %d", g.Date, html.EscapeString(g.Opponent), score)
		if g.FinalScore != nil {
			line += fmt.Sprintf(" (%d-%d)", g.FinalScore.Team, g.FinalScore.Opponent)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatStats renders the all-time aggregates.
func FormatStats(s model.HistoryStats) string {
	if s.TotalGames == 0 {
		return "No games played yet."
	}
	var b strings.Builder
	b.WriteString("📊 <b>Stats</b>\n\n")
	b.WriteString(fmt.Sprintf("Games: %d\n", s.TotalGames))
	b.WriteString(fmt.Sprintf("Average: %.1f\n", s.AverageScore))
	b.WriteString(fmt.Sprintf("Best: %d\n", s.BestScore))
	if s.FavoritePlayer != "" {
		b.WriteString(fmt.Sprintf("Favorite: %s\n", html.EscapeString(s.FavoritePlayer)))
	}
	return b.String()
}
