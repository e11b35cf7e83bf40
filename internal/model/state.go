package model

// Phase is a step of the game lifecycle.
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseDraft   Phase = "draft"
	PhasePlay    Phase = "play"
	PhaseLive    Phase = "live"
	PhaseResults Phase = "results"
)

// Abstract game states reported by the feed.
const (
	GameStatePreview = "Preview"
	GameStateLive    = "Live"
	GameStateFinal   = "Final"
)

// AppState is the persisted session snapshot.
type AppState struct {
	Phase               Phase       `json:"phase"`
	Batters             []Batter    `json:"batters"`
	Players             []Player    `json:"players"`
	Boosters            Boosters    `json:"boosters"`
	LineupInfo          *LineupInfo `json:"lineup_info,omitempty"`
	GameState           string      `json:"game_state"`
	InningStr           string      `json:"inning_str"`
	PreviousScores      map[int]int `json:"previous_scores"`
	PreviousTotalScore  int         `json:"previous_total_score"`
	SavedAt             int64       `json:"saved_at"` // epoch millis
	ScoreViewingAllowed *bool       `json:"score_viewing_allowed,omitempty"`
}

// DefaultPlayerName names the single player of a fresh session.
const DefaultPlayerName = "You"

// NewAppState returns the initial setup-phase state.
func NewAppState() AppState {
	return AppState{
		Phase:          PhaseSetup,
		Batters:        PlaceholderBatters(),
		Players:        []Player{NewPlayer(DefaultPlayerName)},
		Boosters:       Boosters{},
		PreviousScores: map[int]int{},
	}
}

// Player returns the session's single player, or nil if none exists.
func (s *AppState) Player() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return &s.Players[0]
}

// HasPicks reports whether the player has drafted at least one batter.
func (s *AppState) HasPicks() bool {
	p := s.Player()
	return p != nil && len(p.Picks) > 0
}
