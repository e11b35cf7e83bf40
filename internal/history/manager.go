package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"BatterBoost/internal/model"
	"BatterBoost/internal/store"
)

// DefaultRecentLimit is the number of games GetRecent returns for a non-positive limit.
const DefaultRecentLimit = 10

// Manager owns the archived game log. Storage faults are logged and never returned.
type Manager struct {
	store    store.Store
	location *time.Location
	Now      func() time.Time
}

// NewManager creates a Manager. Game dates are computed in loc (UTC when nil).
func NewManager(s store.Store, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.UTC
	}
	return &Manager{store: s, location: loc, Now: time.Now}
}

func emptyData() model.HistoricalData {
	return model.HistoricalData{Games: []model.HistoricalGame{}}
}

// Load returns the stored log, or an empty one if it is missing or malformed.
func (m *Manager) Load(ctx context.Context) model.HistoricalData {
	raw, ok, err := m.store.Get(ctx, store.KeyHistoricalData)
	if err != nil {
		log.Printf("[ERROR] read history: %v", err)
		return emptyData()
	}
	if !ok {
		return emptyData()
	}

	var probe struct {
		Games json.RawMessage `json:"games"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		log.Printf("[WARN] history is not valid JSON: %v", err)
		return emptyData()
	}
	if !bytes.HasPrefix(bytes.TrimSpace(probe.Games), []byte("[")) {
		log.Println("[WARN] history has no games list, starting fresh")
		return emptyData()
	}

	var data model.HistoricalData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Printf("[WARN] history does not match the expected shape: %v", err)
		return emptyData()
	}
	return data
}

// GameID builds the archive key for a game.
func GameID(gamePk int, date string) string {
	return fmt.Sprintf("%d_%s", gamePk, date)
}

// AddGame archives a finished game, replacing any earlier entry with the same id,
// then re-sorts the log newest first and recomputes stats.
func (m *Manager) AddGame(ctx context.Context, players []model.Player, batters []model.Batter, lineup model.LineupInfo, gameStatus string, final *model.FinalScore) {
	now := m.Now()
	date := m.gameDate(lineup.GameDate, now)
	game := model.HistoricalGame{
		ID:          GameID(lineup.GamePk, date),
		Date:        date,
		GamePk:      lineup.GamePk,
		Opponent:    lineup.Opponent,
		Side:        lineup.Side,
		FinalScore:  final,
		GameStatus:  gameStatus,
		Players:     make([]model.HistoricalPlayer, 0, len(players)),
		CompletedAt: now,
	}
	for _, p := range players {
		game.Players = append(game.Players, archivePlayer(p, batters))
	}

	data := m.Load(ctx)
	replaced := false
	for i := range data.Games {
		if data.Games[i].ID == game.ID {
			data.Games[i] = game
			replaced = true
			break
		}
	}
	if !replaced {
		data.Games = append(data.Games, game)
	}
	sort.SliceStable(data.Games, func(i, j int) bool { return data.Games[i].Date > data.Games[j].Date })
	data.Stats = ComputeStats(data.Games)
	data.LastUpdated = now

	m.save(ctx, data)
	log.Printf("[INFO] archived game %s (%s)", game.ID, gameStatus)
}

// fallbackName labels a pick whose batter could not be resolved.
func fallbackName(batterID int) string {
	return fmt.Sprintf("Batter %d", batterID)
}

func archivePlayer(p model.Player, batters []model.Batter) model.HistoricalPlayer {
	hp := model.HistoricalPlayer{Name: p.Name, Picks: make([]model.HistoricalPick, 0, len(p.Results)), TotalScore: p.Score}
	for _, r := range p.Results {
		pick := model.HistoricalPick{
			BatterID:   r.BatterID,
			BatterName: fallbackName(r.BatterID),
			Points:     r.Points,
			BasePoints: r.BasePoints,
			Boost:      r.BoostPercent,
		}
		if b, ok := model.FindBatter(batters, r.BatterID); ok {
			pick.BatterName = b.Name
			pick.ExternalPlayerID = b.ExternalPlayerID
		}
		breakdown := r.Breakdown
		pick.Breakdown = &breakdown
		hp.Picks = append(hp.Picks, pick)
	}
	return hp
}

// gameDate returns YYYY-MM-DD for the game, falling back to today.
func (m *Manager) gameDate(iso string, now time.Time) string {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.In(m.location).Format("2006-01-02")
	}
	if len(iso) >= 10 {
		if _, err := time.Parse("2006-01-02", iso[:10]); err == nil {
			return iso[:10]
		}
	}
	return now.In(m.location).Format("2006-01-02")
}

// GetRecent returns up to limit of the newest games.
func (m *Manager) GetRecent(ctx context.Context, limit int) []model.HistoricalGame {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	games := m.Load(ctx).Games
	if len(games) > limit {
		games = games[:limit]
	}
	return games
}

// GetStats returns the stored aggregate stats.
func (m *Manager) GetStats(ctx context.Context) model.HistoryStats {
	return m.Load(ctx).Stats
}

// Clear removes the whole log.
func (m *Manager) Clear(ctx context.Context) {
	if err := m.store.Remove(ctx, store.KeyHistoricalData); err != nil {
		log.Printf("[ERROR] failed to clear history: %v", err)
	}
}

func (m *Manager) save(ctx context.Context, data model.HistoricalData) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("[ERROR] encode history: %v", err)
		return
	}
	if err := m.store.Set(ctx, store.KeyHistoricalData, string(b)); err != nil {
		log.Printf("[ERROR] failed to save history: %v", err)
	}
}
