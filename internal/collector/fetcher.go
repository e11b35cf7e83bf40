package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BatterBoost/internal/model"
)

// Fetcher defines the interface for fetching game data from the stats feed.
type Fetcher interface {
	FetchSchedule(ctx context.Context, teamID int, date time.Time) (*model.Schedule, error)
	FetchLiveFeed(ctx context.Context, gamePk int) (*model.LiveFeed, error)
	Name() string
}

// ErrNoGame is returned when the feed answered but has no game for the team.
var ErrNoGame = errors.New("no game scheduled")

// FeedError is a failed fetch: transport error, non-200 status or undecodable body.
type FeedError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FeedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

// IsFeedError reports whether err is a fetch failure as opposed to an empty answer.
func IsFeedError(err error) bool {
	var fe *FeedError
	return errors.As(err, &fe)
}
