package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"BatterBoost/internal/model"
)

const (
	// EstimatedGameLength approximates how long a game runs after first pitch.
	EstimatedGameLength = 3 * time.Hour
	// RecentlyFinishedGrace keeps a finished game relevant for a while after its estimated end.
	RecentlyFinishedGrace = 30 * time.Minute
	// NextGameLookahead is how many days past today NextGameStart searches.
	NextGameLookahead = 3

	lineupSize = 9
)

// Lineup is the result of loading today's game for the team.
type Lineup struct {
	Batters []model.Batter
	Info    model.LineupInfo
	Warning string // set when placeholder batters were used
}

// Collector turns feed payloads into what the game engine consumes.
type Collector struct {
	Fetcher  Fetcher
	TeamID   int
	Location *time.Location
}

// NewCollector creates a new Collector. A nil location means UTC.
func NewCollector(fetcher Fetcher, teamID int, loc *time.Location) *Collector {
	if loc == nil {
		loc = time.UTC
	}
	return &Collector{Fetcher: fetcher, TeamID: teamID, Location: loc}
}

// LoadLineup finds today's game and the team's batting order for it.
// A missing or unreachable lineup falls back to placeholder batters with a warning.
func (c *Collector) LoadLineup(ctx context.Context, now time.Time) (*Lineup, error) {
	sched, err := c.Fetcher.FetchSchedule(ctx, c.TeamID, now.In(c.Location))
	if err != nil {
		return nil, err
	}
	game, ok := pickGame(sched.Games())
	if !ok {
		return nil, ErrNoGame
	}

	info := model.LineupInfo{GamePk: game.GamePk, GameDate: game.GameDate, Side: model.SideHome}
	info.Opponent = game.Teams.Away.Team.Name
	if game.Teams.Away.Team.ID == c.TeamID {
		info.Side = model.SideAway
		info.Opponent = game.Teams.Home.Team.Name
	}
	if t, err := time.Parse(time.RFC3339, game.GameDate); err == nil {
		info.FirstPitchLocal = t.In(c.Location).Format("3:04 PM")
	}

	lineup := &Lineup{Info: info}
	feed, err := c.Fetcher.FetchLiveFeed(ctx, game.GamePk)
	if err != nil {
		log.Printf("[WARN] lineup fetch for game %d failed: %v", game.GamePk, err)
		lineup.Batters = model.PlaceholderBatters()
		lineup.Warning = "Lineup unavailable right now; using placeholders."
		return lineup, nil
	}
	team := feed.Team(info.Side)
	if len(team.BattingOrder) == 0 {
		lineup.Batters = model.PlaceholderBatters()
		lineup.Warning = "Lineup not posted yet; using placeholders."
		return lineup, nil
	}

	lineup.Batters = model.PlaceholderBatters()
	for i, pid := range team.BattingOrder {
		if i >= lineupSize {
			break
		}
		name := fmt.Sprintf("Batter %d", i+1)
		if p, ok := team.Players[playerKey(pid)]; ok && p.Person.FullName != "" {
			name = p.Person.FullName
		}
		lineup.Batters[i] = model.Batter{ID: i + 1, Name: name, ExternalPlayerID: pid}
	}
	return lineup, nil
}

// HasRelevantGameToday reports whether the team has a game today that is live,
// still to be played, or finished within RecentlyFinishedGrace of its estimated end.
func (c *Collector) HasRelevantGameToday(ctx context.Context, now time.Time) (bool, error) {
	sched, err := c.Fetcher.FetchSchedule(ctx, c.TeamID, now.In(c.Location))
	if err != nil {
		return false, err
	}
	for _, g := range sched.Games() {
		switch g.Status.AbstractGameState {
		case model.GameStateLive, model.GameStatePreview:
			return true, nil
		case model.GameStateFinal:
			start, err := time.Parse(time.RFC3339, g.GameDate)
			if err != nil {
				continue
			}
			if now.Before(start.Add(EstimatedGameLength + RecentlyFinishedGrace)) {
				return true, nil
			}
		}
	}
	return false, nil
}

// NextGameStart returns the ISO start time of the first not-yet-started game after now,
// searching today and the next NextGameLookahead days. The game excludeGamePk is skipped
// (0 skips nothing). Empty means none found.
func (c *Collector) NextGameStart(ctx context.Context, now time.Time, excludeGamePk int) (string, error) {
	day := now.In(c.Location)
	for i := 0; i <= NextGameLookahead; i++ {
		sched, err := c.Fetcher.FetchSchedule(ctx, c.TeamID, day.AddDate(0, 0, i))
		if err != nil {
			return "", err
		}
		for _, g := range sched.Games() {
			if g.Status.AbstractGameState != model.GameStatePreview || (excludeGamePk != 0 && g.GamePk == excludeGamePk) {
				continue
			}
			start, err := time.Parse(time.RFC3339, g.GameDate)
			if err != nil || !start.After(now) {
				continue
			}
			return g.GameDate, nil
		}
	}
	return "", nil
}

// FetchLive fetches the live feed for a game.
func (c *Collector) FetchLive(ctx context.Context, gamePk int) (*model.LiveFeed, error) {
	return c.Fetcher.FetchLiveFeed(ctx, gamePk)
}

// RawStatsFor extracts one player's counters from a live feed. Negative counters are
// clamped to zero. ok is false when the player is not in the team's boxscore.
func RawStatsFor(feed *model.LiveFeed, side model.Side, playerID int) (model.RawStats, bool) {
	p, ok := feed.Team(side).Players[playerKey(playerID)]
	if !ok || playerID == 0 {
		return model.RawStats{}, false
	}
	bs := p.Stats.Batting
	raw := model.RawStats{
		Hits:       max(0, bs.Hits),
		Doubles:    max(0, bs.Doubles),
		Triples:    max(0, bs.Triples),
		HomeRuns:   max(0, bs.HomeRuns),
		Walks:      max(0, bs.BaseOnBalls),
		HitByPitch: max(0, bs.HitByPitch),
		Strikeouts: max(0, bs.StrikeOuts),
		GIDP:       max(0, bs.GroundIntoDoublePlay),
		RBI:        max(0, bs.RBI),
		Runs:       max(0, bs.Runs),
	}
	for _, play := range feed.LiveData.Plays.AllPlays {
		if play.Matchup.Batter.ID != playerID {
			continue
		}
		switch play.Result.EventType {
		case "fielders_choice", "fielders_choice_out":
			raw.FieldersChoice++
		}
	}
	return raw, true
}

// InningLabel renders the linescore position, e.g. "Top 3rd", or "Final".
func InningLabel(feed *model.LiveFeed) string {
	if feed.GameData.Status.AbstractGameState == model.GameStateFinal {
		return "Final"
	}
	ls := feed.LiveData.Linescore
	if ls.CurrentInningOrdinal == "" {
		return ""
	}
	if ls.InningState == "" {
		return ls.CurrentInningOrdinal
	}
	return ls.InningState + " " + ls.CurrentInningOrdinal
}

// pickGame prefers the first game that has not finished, else the last game of the day.
func pickGame(games []model.ScheduleGame) (model.ScheduleGame, bool) {
	if len(games) == 0 {
		return model.ScheduleGame{}, false
	}
	for _, g := range games {
		if g.Status.AbstractGameState != model.GameStateFinal {
			return g, true
		}
	}
	return games[len(games)-1], true
}

func playerKey(id int) string {
	return fmt.Sprintf("ID%d", id)
}
