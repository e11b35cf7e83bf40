package game

import (
	"context"
	"log"

	"BatterBoost/internal/collector"
	"BatterBoost/internal/model"
	"BatterBoost/internal/scoring"
)

// TickResult reports the outcome of one live update.
type TickResult struct {
	State    model.AppState
	Finished bool // the game went final and was archived
}

// Tick runs one fetch-compute-apply cycle: it fetches the live feed, rescores every
// pick, and archives the game and moves to results once it is final. Feed errors
// leave the session untouched.
func (c *Controller) Tick(ctx context.Context) (TickResult, error) {
	c.mu.Lock()
	if c.state.Phase != model.PhaseLive || c.state.LineupInfo == nil {
		c.mu.Unlock()
		return TickResult{}, reject("live update", "live scoring is not running")
	}
	gamePk := c.state.LineupInfo.GamePk
	c.mu.Unlock()

	feed, err := c.feed.FetchLive(ctx, gamePk)
	if err != nil {
		return TickResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// The session may have moved on while the feed was in flight.
	if c.state.Phase != model.PhaseLive || c.state.LineupInfo == nil || c.state.LineupInfo.GamePk != gamePk {
		return TickResult{}, reject("live update", "live scoring stopped")
	}

	applyFeed(&c.state, feed)
	finished := c.state.GameState == model.GameStateFinal
	if finished {
		team, opp := feed.Runs(c.state.LineupInfo.Side)
		c.history.AddGame(ctx, c.state.Players, c.state.Batters, *c.state.LineupInfo, c.state.GameState,
			&model.FinalScore{Team: team, Opponent: opp})
		c.state.Phase = model.PhaseResults
		allowed := true
		c.state.ScoreViewingAllowed = &allowed
		log.Printf("[INFO] game %d final, total score %d", gamePk, c.state.Player().Score)
	}
	c.saveLocked(ctx)
	return TickResult{State: cloneState(c.state), Finished: finished}, nil
}

// CheckCompletedGame runs a single live update if the session is live. It is used when
// the app returns to the foreground instead of replaying missed polls.
func (c *Controller) CheckCompletedGame(ctx context.Context) (TickResult, bool) {
	if c.State().Phase != model.PhaseLive {
		return TickResult{}, false
	}
	res, err := c.Tick(ctx)
	if err != nil {
		log.Printf("[WARN] completed game check: %v", err)
		return TickResult{}, false
	}
	return res, true
}

func applyFeed(st *model.AppState, feed *model.LiveFeed) {
	p := st.Player()
	if p == nil {
		return
	}
	side := st.LineupInfo.Side

	prev := make(map[int]int, len(p.Results))
	for _, r := range p.Results {
		prev[r.BatterID] = r.Points
	}

	results := make([]model.PlayerPickResult, 0, len(p.Picks))
	for _, id := range p.Picks {
		var raw model.RawStats
		if b, ok := model.FindBatter(st.Batters, id); ok && b.ExternalPlayerID != 0 {
			if r, ok := collector.RawStatsFor(feed, side, b.ExternalPlayerID); ok {
				raw = r
			}
		}
		results = append(results, scoring.ScorePick(id, raw, st.Boosters[id]))
	}

	st.PreviousScores = prev
	st.PreviousTotalScore = p.Score
	p.Results = results
	p.Score = scoring.TotalPoints(results)
	st.GameState = feed.GameData.Status.AbstractGameState
	st.InningStr = collector.InningLabel(feed)
}
