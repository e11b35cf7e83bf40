package collector

import (
	"context"
	"sync"
	"time"

	"BatterBoost/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Schedules are keyed by date ("2006-01-02"); dates without an entry return an empty schedule.
type MockFetcher struct {
	mu          sync.Mutex
	Schedules   map[string]*model.Schedule
	Feeds       map[int]*model.LiveFeed
	ScheduleErr error
	FeedErr     error
	FeedCalls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSchedule(_ context.Context, _ int, date time.Time) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ScheduleErr != nil {
		return nil, m.ScheduleErr
	}
	if s, ok := m.Schedules[date.Format("2006-01-02")]; ok {
		return s, nil
	}
	return &model.Schedule{}, nil
}

func (m *MockFetcher) FetchLiveFeed(_ context.Context, gamePk int) (*model.LiveFeed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedCalls++
	if m.FeedErr != nil {
		return nil, m.FeedErr
	}
	if f, ok := m.Feeds[gamePk]; ok {
		return f, nil
	}
	return nil, &FeedError{Op: "fetch live feed", StatusCode: 404, Err: ErrNoGame}
}

// SetFeed replaces the live feed returned for gamePk.
func (m *MockFetcher) SetFeed(gamePk int, feed *model.LiveFeed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Feeds == nil {
		m.Feeds = map[int]*model.LiveFeed{}
	}
	m.Feeds[gamePk] = feed
}

// MockGame builds a scheduled game for tests and local runs.
func MockGame(gamePk int, gameDate, state string, home, away model.TeamRef) model.ScheduleGame {
	var g model.ScheduleGame
	g.GamePk = gamePk
	g.GameDate = gameDate
	g.Status.AbstractGameState = state
	g.Teams.Home.Team = home
	g.Teams.Away.Team = away
	return g
}

// MockBatter is one boxscore entry for MockLiveFeed.
type MockBatter struct {
	ID    int
	Name  string
	Stats model.BattingStats
}

// MockLiveFeed builds a live feed whose batting order for side is the given batters.
func MockLiveFeed(state string, side model.Side, batters []MockBatter) *model.LiveFeed {
	feed := &model.LiveFeed{}
	feed.GameData.Status.AbstractGameState = state
	team := feed.Team(side)
	team.Players = map[string]model.BoxscorePlayer{}
	for _, b := range batters {
		var p model.BoxscorePlayer
		p.Person.ID = b.ID
		p.Person.FullName = b.Name
		p.Stats.Batting = b.Stats
		team.Players[playerKey(b.ID)] = p
		team.BattingOrder = append(team.BattingOrder, b.ID)
	}
	return feed
}
