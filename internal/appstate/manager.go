package appstate

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"BatterBoost/internal/model"
	"BatterBoost/internal/store"
	"BatterBoost/internal/timegate"
)

// MaxAge is how long a saved snapshot stays restorable.
const MaxAge = 24 * time.Hour

// GameProbe answers schedule questions needed to decide whether a snapshot is stale.
type GameProbe interface {
	HasRelevantGameToday(ctx context.Context, now time.Time) (bool, error)
	NextGameStart(ctx context.Context, now time.Time, excludeGamePk int) (string, error)
}

// Manager loads, saves and clears the session snapshot. It never returns errors:
// storage and feed faults are logged and treated as "no saved state" or "keep state".
type Manager struct {
	store store.Store
	games GameProbe
	Now   func() time.Time
}

// NewManager creates a Manager over the given store.
func NewManager(s store.Store, games GameProbe) *Manager {
	return &Manager{store: s, games: games, Now: time.Now}
}

// Load returns the saved snapshot if it is still valid for the current game, or nil.
// Invalid snapshots are removed from the store.
func (m *Manager) Load(ctx context.Context) *model.AppState {
	raw, ok, err := m.store.Get(ctx, store.KeyAppState)
	if err != nil {
		log.Printf("[ERROR] read app state: %v", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var st model.AppState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Printf("[WARN] discarding corrupted app state: %v", err)
		m.Clear(ctx)
		return nil
	}

	now := m.Now()
	if now.Sub(time.UnixMilli(st.SavedAt)) > MaxAge {
		log.Println("[INFO] discarding app state older than 24h")
		m.Clear(ctx)
		return nil
	}

	if st.HasPicks() && (st.Phase == model.PhaseResults || st.Phase == model.PhaseLive) {
		if !m.scoreViewingAllowed(ctx, now, sessionGamePk(st)) {
			log.Println("[INFO] next game is about to start, discarding finished app state")
			m.Clear(ctx)
			return nil
		}
		return &st
	}

	relevant, err := m.games.HasRelevantGameToday(ctx, now)
	if err != nil {
		log.Printf("[WARN] game check failed, keeping saved state: %v", err)
		return &st
	}
	if !relevant {
		log.Println("[INFO] no relevant game today, discarding app state")
		m.Clear(ctx)
		return nil
	}
	return &st
}

// ScoreViewingAllowed reports whether results may still be shown; feed failures allow viewing.
// The session's own game, sessionGamePk, never counts as the next game.
func (m *Manager) ScoreViewingAllowed(ctx context.Context, sessionGamePk int) bool {
	return m.scoreViewingAllowed(ctx, m.Now(), sessionGamePk)
}

func (m *Manager) scoreViewingAllowed(ctx context.Context, now time.Time, sessionGamePk int) bool {
	next, err := m.games.NextGameStart(ctx, now, sessionGamePk)
	if err != nil {
		log.Printf("[WARN] next game lookup failed, allowing score viewing: %v", err)
		return true
	}
	return timegate.IsScoreViewingAllowed(next, now)
}

// Save fills unset fields with their initial values, stamps SavedAt and writes the snapshot.
func (m *Manager) Save(ctx context.Context, st model.AppState) {
	st = withDefaults(st)
	st.SavedAt = m.Now().UnixMilli()
	data, err := json.Marshal(st)
	if err != nil {
		log.Printf("[ERROR] encode app state: %v", err)
		return
	}
	if err := m.store.Set(ctx, store.KeyAppState, string(data)); err != nil {
		log.Printf("[ERROR] failed to save app state: %v", err)
	}
}

// Clear removes the saved snapshot.
func (m *Manager) Clear(ctx context.Context) {
	if err := m.store.Remove(ctx, store.KeyAppState); err != nil {
		log.Printf("[ERROR] failed to clear app state: %v", err)
	}
}

func sessionGamePk(st model.AppState) int {
	if st.LineupInfo == nil {
		return 0
	}
	return st.LineupInfo.GamePk
}

func withDefaults(st model.AppState) model.AppState {
	init := model.NewAppState()
	if st.Phase == "" {
		st.Phase = init.Phase
	}
	if st.Batters == nil {
		st.Batters = init.Batters
	}
	if len(st.Players) == 0 {
		st.Players = init.Players
	}
	if st.Boosters == nil {
		st.Boosters = init.Boosters
	}
	if st.PreviousScores == nil {
		st.PreviousScores = init.PreviousScores
	}
	return st
}
