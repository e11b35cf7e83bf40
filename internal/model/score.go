package model

import "github.com/google/uuid"

// OutcomeCode is a display code for a plate appearance result.
type OutcomeCode string

const (
	OutcomeSingle    OutcomeCode = "1B"
	OutcomeDouble    OutcomeCode = "2B"
	OutcomeTriple    OutcomeCode = "3B"
	OutcomeHomeRun   OutcomeCode = "HR"
	OutcomeWalk      OutcomeCode = "BB"
	OutcomeStrikeout OutcomeCode = "K"
	OutcomeGIDP      OutcomeCode = "GIDP"
)

// ScoreBreakdown holds the counters that feed the point table.
type ScoreBreakdown struct {
	Singles        int `json:"singles"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HRSolo         int `json:"hr_solo"`
	HR2Run         int `json:"hr_2r"`
	HR3Run         int `json:"hr_3r"`
	HRGrandSlam    int `json:"hr_grand_slam"`
	Walks          int `json:"walks"`
	HitByPitch     int `json:"hbp"`
	RBINonHR       int `json:"rbi_non_hr"`
	RunsNonHR      int `json:"runs_non_hr"`
	Strikeouts     int `json:"strikeouts"`
	GIDP           int `json:"gidp"`
	FieldersChoice int `json:"fielders_choice"`
}

// HomeRuns is the total across all home run classes.
func (b ScoreBreakdown) HomeRuns() int {
	return b.HRSolo + b.HR2Run + b.HR3Run + b.HRGrandSlam
}

// RawStats are the per-game batting counters read from the feed.
type RawStats struct {
	Hits           int
	Doubles        int
	Triples        int
	HomeRuns       int
	Walks          int
	HitByPitch     int
	Strikeouts     int
	GIDP           int
	RBI            int
	Runs           int
	FieldersChoice int
}

// PlayerPickResult is the latest scoring of one drafted batter.
type PlayerPickResult struct {
	BatterID     int            `json:"batter_id"`
	Outcomes     []OutcomeCode  `json:"outcomes"`
	Points       int            `json:"points"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
	BoostPercent int            `json:"boost_percent"`
	BasePoints   int            `json:"base_points"`
}

// Player is the single user of the session.
type Player struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Picks   []int              `json:"picks"` // batter ids in pick order
	Results []PlayerPickResult `json:"results,omitempty"`
	Score   int                `json:"score,omitempty"`
}

// NewPlayer creates a player with a fresh id and no picks.
func NewPlayer(name string) Player {
	return Player{ID: uuid.NewString(), Name: name, Picks: []int{}}
}

// HasPick reports whether batterID is among the player's picks.
func (p *Player) HasPick(batterID int) bool {
	for _, id := range p.Picks {
		if id == batterID {
			return true
		}
	}
	return false
}

// Boosters maps batter id to boost percent.
type Boosters map[int]int

// Clone returns an independent copy.
func (b Boosters) Clone() Boosters {
	out := make(Boosters, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
