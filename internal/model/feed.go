package model

// The types below are partial contracts for the MLB Stats API payloads.
// Only the fields the engine reads are declared; absent fields decode as zero values.

// Schedule is the response of the schedule endpoint.
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate groups the games of one calendar day.
type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// GameStatus is the feed's status block.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// TeamRef identifies a club.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ScheduleTeam is one side of a scheduled game.
type ScheduleTeam struct {
	Team  TeamRef `json:"team"`
	Score int     `json:"score"`
}

// ScheduleGame is one scheduled game.
type ScheduleGame struct {
	GamePk   int        `json:"gamePk"`
	GameDate string     `json:"gameDate"`
	Status   GameStatus `json:"status"`
	Teams    struct {
		Home ScheduleTeam `json:"home"`
		Away ScheduleTeam `json:"away"`
	} `json:"teams"`
}

// Games flattens all dates into a single list.
func (s *Schedule) Games() []ScheduleGame {
	var games []ScheduleGame
	for _, d := range s.Dates {
		games = append(games, d.Games...)
	}
	return games
}

// LiveFeed is the response of the live game feed endpoint.
type LiveFeed struct {
	GameData struct {
		Status GameStatus `json:"status"`
	} `json:"gameData"`
	LiveData struct {
		Linescore Linescore `json:"linescore"`
		Boxscore  struct {
			Teams struct {
				Home BoxscoreTeam `json:"home"`
				Away BoxscoreTeam `json:"away"`
			} `json:"teams"`
		} `json:"boxscore"`
		Plays struct {
			AllPlays []Play `json:"allPlays"`
		} `json:"plays"`
	} `json:"liveData"`
}

// Linescore is the inning/runs summary.
type Linescore struct {
	CurrentInningOrdinal string `json:"currentInningOrdinal"`
	InningState          string `json:"inningState"`
	Teams                struct {
		Home struct {
			Runs int `json:"runs"`
		} `json:"home"`
		Away struct {
			Runs int `json:"runs"`
		} `json:"away"`
	} `json:"teams"`
}

// BoxscoreTeam is one team's boxscore. Players are keyed "ID<playerId>".
type BoxscoreTeam struct {
	Players      map[string]BoxscorePlayer `json:"players"`
	BattingOrder []int                     `json:"battingOrder"`
}

// BoxscorePlayer is one player's boxscore entry.
type BoxscorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Stats struct {
		Batting BattingStats `json:"batting"`
	} `json:"stats"`
}

// BattingStats are the per-game batting counters.
type BattingStats struct {
	Hits                 int `json:"hits"`
	Doubles              int `json:"doubles"`
	Triples              int `json:"triples"`
	HomeRuns             int `json:"homeRuns"`
	BaseOnBalls          int `json:"baseOnBalls"`
	HitByPitch           int `json:"hitByPitch"`
	StrikeOuts           int `json:"strikeOuts"`
	GroundIntoDoublePlay int `json:"groundIntoDoublePlay"`
	RBI                  int `json:"rbi"`
	Runs                 int `json:"runs"`
}

// Play is one plate appearance in the play log.
type Play struct {
	Result struct {
		EventType string `json:"eventType"`
	} `json:"result"`
	Matchup struct {
		Batter struct {
			ID int `json:"id"`
		} `json:"batter"`
	} `json:"matchup"`
}

// Team returns the boxscore for the given side.
func (f *LiveFeed) Team(side Side) *BoxscoreTeam {
	if side == SideAway {
		return &f.LiveData.Boxscore.Teams.Away
	}
	return &f.LiveData.Boxscore.Teams.Home
}

// Runs returns (team, opponent) runs for the given side.
func (f *LiveFeed) Runs(side Side) (int, int) {
	home := f.LiveData.Linescore.Teams.Home.Runs
	away := f.LiveData.Linescore.Teams.Away.Runs
	if side == SideAway {
		return away, home
	}
	return home, away
}
