package model

import "time"

// FinalScore is the game's final run totals.
type FinalScore struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

// HistoricalPick is one archived pick.
type HistoricalPick struct {
	BatterID         int             `json:"batter_id"`
	BatterName       string          `json:"batter_name"`
	ExternalPlayerID int             `json:"external_player_id,omitempty"`
	Points           int             `json:"points"`
	BasePoints       int             `json:"base_points"`
	Boost            int             `json:"boost"`
	Breakdown        *ScoreBreakdown `json:"breakdown,omitempty"`
}

// HistoricalPlayer is one player's archived picks and total.
type HistoricalPlayer struct {
	Name       string           `json:"name"`
	Picks      []HistoricalPick `json:"picks"`
	TotalScore int              `json:"total_score"`
}

// HistoricalGame is an archived game, keyed by "<gamePk>_<YYYY-MM-DD>".
type HistoricalGame struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	GamePk      int                `json:"game_pk"`
	Opponent    string             `json:"opponent"`
	Side        Side               `json:"side"`
	FinalScore  *FinalScore        `json:"final_score,omitempty"`
	GameStatus  string             `json:"game_status"`
	Players     []HistoricalPlayer `json:"players"`
	CompletedAt time.Time          `json:"completed_at"`
}

// HistoryStats are aggregates derived from all archived games.
type HistoryStats struct {
	TotalGames     int     `json:"total_games"`
	AverageScore   float64 `json:"average_score"`
	BestScore      int     `json:"best_score"`
	BestGame       string  `json:"best_game,omitempty"`
	FavoritePlayer string  `json:"favorite_player,omitempty"`
}

// HistoricalData is the archived game log plus its stats.
type HistoricalData struct {
	Games       []HistoricalGame `json:"games"`
	Stats       HistoryStats     `json:"stats"`
	LastUpdated time.Time        `json:"last_updated"`
}
