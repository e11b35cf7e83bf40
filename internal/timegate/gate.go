package timegate

import "time"

const (
	// DraftGrace is how long after first pitch picks may still change.
	DraftGrace = 5 * time.Minute
	// ViewingCutoff is how long before the next game's first pitch old scores are hidden.
	ViewingCutoff = 10 * time.Minute
)

// ParseGameTime parses an ISO-8601 game time as sent by the feed.
func ParseGameTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDraftingAllowed reports whether picks may still be made. Unknown or unparseable
// start times allow drafting.
func IsDraftingAllowed(gameStart string, now time.Time) bool {
	start, ok := ParseGameTime(gameStart)
	if !ok {
		return true
	}
	return now.Before(start.Add(DraftGrace))
}

// IsScoreViewingAllowed reports whether the last game's scores may still be shown.
// Unknown or unparseable next-game times allow viewing.
func IsScoreViewingAllowed(nextGameStart string, now time.Time) bool {
	next, ok := ParseGameTime(nextGameStart)
	if !ok {
		return true
	}
	return now.Before(next.Add(-ViewingCutoff))
}
