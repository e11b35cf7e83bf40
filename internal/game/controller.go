package game

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"BatterBoost/internal/appstate"
	"BatterBoost/internal/boost"
	"BatterBoost/internal/collector"
	"BatterBoost/internal/history"
	"BatterBoost/internal/model"
	"BatterBoost/internal/timegate"
)

// Controller owns the session state and applies user actions and live updates to it.
// Every accepted mutation is saved through the app state manager.
type Controller struct {
	mu      sync.Mutex
	state   model.AppState
	feed    *collector.Collector
	states  *appstate.Manager
	history *history.Manager
	Now     func() time.Time
}

// NewController creates a Controller holding a fresh setup-phase session.
func NewController(feed *collector.Collector, states *appstate.Manager, hist *history.Manager) *Controller {
	return &Controller{
		state:   model.NewAppState(),
		feed:    feed,
		states:  states,
		history: hist,
		Now:     time.Now,
	}
}

// State returns a copy of the current session.
func (c *Controller) State() model.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

// Restore replaces the session with the saved snapshot if one is still valid.
func (c *Controller) Restore(ctx context.Context) bool {
	st := c.states.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if st == nil {
		c.state = model.NewAppState()
		return false
	}
	c.state = *st
	log.Printf("[INFO] restored session in phase %s", st.Phase)
	return true
}

// LoadLineup fetches today's game and lineup. Feed failures keep placeholder batters
// and return a warning; a day without a game returns collector.ErrNoGame.
func (c *Controller) LoadLineup(ctx context.Context) (string, error) {
	if err := c.requirePhase("load lineup", model.PhaseSetup); err != nil {
		return "", err
	}
	lineup, err := c.feed.LoadLineup(ctx, c.Now())
	if err != nil {
		if errors.Is(err, collector.ErrNoGame) {
			return "", err
		}
		log.Printf("[WARN] load lineup: %v", err)
		return "Stats feed unavailable; using placeholder batters.", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseSetup {
		return "", reject("load lineup", "lineup can only change during setup")
	}
	c.state.Batters = lineup.Batters
	info := lineup.Info
	c.state.LineupInfo = &info
	c.saveLocked(ctx)
	return lineup.Warning, nil
}

// RenameBatter edits a batter's name during setup.
func (c *Controller) RenameBatter(ctx context.Context, batterID int, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseSetup {
		return reject("rename", "names can only be edited during setup")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return reject("rename", "name must not be empty")
	}
	for i := range c.state.Batters {
		if c.state.Batters[i].ID == batterID {
			c.state.Batters[i].Name = name
			c.saveLocked(ctx)
			return nil
		}
	}
	return reject("rename", "no batter %d", batterID)
}

// StartDraft moves from setup to draft.
func (c *Controller) StartDraft(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseSetup {
		return reject("start draft", "draft can only start from setup")
	}
	if !c.draftingAllowedLocked() {
		return reject("start draft", "the game has already started")
	}
	c.state.Phase = model.PhaseDraft
	c.saveLocked(ctx)
	return nil
}

// TogglePick adds or removes a batter from the player's picks.
func (c *Controller) TogglePick(ctx context.Context, batterID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseDraft {
		return reject("pick", "picks can only change during the draft")
	}
	if !c.draftingAllowedLocked() {
		return reject("pick", "the game has already started")
	}
	if _, ok := model.FindBatter(c.state.Batters, batterID); !ok {
		return reject("pick", "no batter %d", batterID)
	}
	p := c.state.Player()
	if p == nil {
		return reject("pick", "no player in session")
	}

	if p.HasPick(batterID) {
		picks := make([]int, 0, len(p.Picks))
		for _, id := range p.Picks {
			if id != batterID {
				picks = append(picks, id)
			}
		}
		p.Picks = picks
		delete(c.state.Boosters, batterID)
	} else {
		if len(p.Picks) >= boost.PicksRequired {
			return reject("pick", "already picked %d batters", boost.PicksRequired)
		}
		p.Picks = append(p.Picks, batterID)
	}
	c.saveLocked(ctx)
	return nil
}

// FinishDraft locks in exactly three picks and gives them an even boost split.
func (c *Controller) FinishDraft(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseDraft {
		return reject("finish draft", "not drafting")
	}
	p := c.state.Player()
	if p == nil || len(p.Picks) != boost.PicksRequired {
		n := 0
		if p != nil {
			n = len(p.Picks)
		}
		return reject("finish draft", "pick exactly %d batters (have %d)", boost.PicksRequired, n)
	}
	c.state.Boosters = boost.Even(p.Picks)
	c.state.Phase = model.PhasePlay
	c.saveLocked(ctx)
	return nil
}

// SetBoost sets one pick's boost and rebalances the other two so the total stays 100.
func (c *Controller) SetBoost(ctx context.Context, batterID, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhasePlay {
		return reject("boost", "boosts can only change before live scoring")
	}
	p := c.state.Player()
	if p == nil || !p.HasPick(batterID) {
		return reject("boost", "batter %d is not one of your picks", batterID)
	}
	c.state.Boosters = boost.Normalize(batterID, value, p.Picks, c.state.Boosters)
	c.saveLocked(ctx)
	return nil
}

// StartLiveScoring enters the live phase once the boost allocation is complete.
func (c *Controller) StartLiveScoring(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhasePlay {
		return reject("start live", "finish the draft first")
	}
	p := c.state.Player()
	if p == nil || !boost.ValidateComplete(p.Picks, c.state.Boosters) {
		return reject("start live", "boosts for your %d picks must total %d", boost.PicksRequired, boost.Total)
	}
	if c.state.LineupInfo == nil || c.state.LineupInfo.GamePk == 0 {
		return reject("start live", "no game loaded")
	}
	c.state.Phase = model.PhaseLive
	c.saveLocked(ctx)
	return nil
}

// StopLiveScoring leaves the live phase and returns to play.
func (c *Controller) StopLiveScoring(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != model.PhaseLive {
		return reject("stop live", "live scoring is not running")
	}
	c.state.Phase = model.PhasePlay
	c.saveLocked(ctx)
	return nil
}

// ResetAll clears the saved session and starts over. History is kept.
func (c *Controller) ResetAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states.Clear(ctx)
	c.state = model.NewAppState()
}

// Background saves the session, e.g. before the process is suspended.
func (c *Controller) Background(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveLocked(ctx)
}

// RefreshScoreViewing re-checks whether results may still be shown and records the answer.
func (c *Controller) RefreshScoreViewing(ctx context.Context) bool {
	c.mu.Lock()
	gamePk := 0
	if c.state.LineupInfo != nil {
		gamePk = c.state.LineupInfo.GamePk
	}
	c.mu.Unlock()

	allowed := c.states.ScoreViewingAllowed(ctx, gamePk)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ScoreViewingAllowed = &allowed
	c.saveLocked(ctx)
	return allowed
}

func (c *Controller) requirePhase(action string, phase model.Phase) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != phase {
		return reject(action, "only allowed during %s", phase)
	}
	return nil
}

func (c *Controller) draftingAllowedLocked() bool {
	start := ""
	if c.state.LineupInfo != nil {
		start = c.state.LineupInfo.GameDate
	}
	return timegate.IsDraftingAllowed(start, c.Now())
}

func (c *Controller) saveLocked(ctx context.Context) {
	c.states.Save(ctx, c.state)
}

func cloneState(st model.AppState) model.AppState {
	out := st
	out.Batters = append([]model.Batter(nil), st.Batters...)
	out.Players = make([]model.Player, len(st.Players))
	for i, p := range st.Players {
		p.Picks = append([]int{}, p.Picks...)
		if p.Results != nil {
			p.Results = append([]model.PlayerPickResult(nil), p.Results...)
		}
		out.Players[i] = p
	}
	out.Boosters = st.Boosters.Clone()
	out.PreviousScores = make(map[int]int, len(st.PreviousScores))
	for k, v := range st.PreviousScores {
		out.PreviousScores[k] = v
	}
	if st.LineupInfo != nil {
		info := *st.LineupInfo
		out.LineupInfo = &info
	}
	if st.ScoreViewingAllowed != nil {
		v := *st.ScoreViewingAllowed
		out.ScoreViewingAllowed = &v
	}
	return out
}
