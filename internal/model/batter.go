package model

// Side is which side of the matchup the followed team is on.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Batter is a lineup slot the user can draft.
type Batter struct {
	ID               int    `json:"id"` // lineup slot, 1..9
	Name             string `json:"name"`
	ExternalPlayerID int    `json:"external_player_id,omitempty"`
}

// LineupInfo describes the game a lineup was loaded for.
type LineupInfo struct {
	GamePk          int    `json:"game_pk"`
	Opponent        string `json:"opponent"`
	Side            Side   `json:"side"`
	FirstPitchLocal string `json:"first_pitch_local,omitempty"`
	GameDate        string `json:"game_date,omitempty"` // ISO-8601
}

// PlaceholderName is used for lineup slots when no lineup has been posted yet.
const PlaceholderName = "TBD"

// PlaceholderBatters returns nine unnamed lineup slots.
func PlaceholderBatters() []Batter {
	batters := make([]Batter, 9)
	for i := range batters {
		batters[i] = Batter{ID: i + 1, Name: PlaceholderName}
	}
	return batters
}

// FindBatter returns the batter with the given slot id.
func FindBatter(batters []Batter, id int) (Batter, bool) {
	for _, b := range batters {
		if b.ID == id {
			return b, true
		}
	}
	return Batter{}, false
}
