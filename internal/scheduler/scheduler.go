package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"BatterBoost/internal/collector"
	"BatterBoost/internal/game"
	"BatterBoost/internal/history"
	"BatterBoost/internal/model"
	"BatterBoost/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Notifier pushes unsolicited messages to the user.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the live poller and the results viewing check, and routes chat commands.
type Scheduler struct {
	Cron        *cron.Cron
	Game        *game.Controller
	History     *history.Manager
	Notifier    Notifier
	Ctx         context.Context
	LiveSpec    string
	ViewingSpec string

	mu        sync.Mutex
	liveEntry cron.EntryID
	viewEntry cron.EntryID
	polling   atomic.Bool
}

// NewScheduler creates a new Scheduler. Overlapping runs of the same job are skipped.
func NewScheduler(ctx context.Context, ctrl *game.Controller, hist *history.Manager, n Notifier, liveSpec, viewingSpec string) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Game:        ctrl,
		History:     hist,
		Notifier:    n,
		Ctx:         ctx,
		LiveSpec:    liveSpec,
		ViewingSpec: viewingSpec,
	}
}

// Start starts the cron scheduler and resumes whatever job the restored session needs.
func (s *Scheduler) Start() error {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")

	switch s.Game.State().Phase {
	case model.PhaseLive:
		if res, ok := s.Game.CheckCompletedGame(s.Ctx); ok && res.Finished {
			s.announceFinal(res.State)
			return s.StartViewingCheck()
		}
		return s.StartLive()
	case model.PhaseResults:
		return s.StartViewingCheck()
	}
	return nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// StartLive registers the live poller. It is a no-op if already registered.
func (s *Scheduler) StartLive() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.liveEntry != 0 {
		return nil
	}
	id, err := s.Cron.AddFunc(s.LiveSpec, s.pollLive)
	if err != nil {
		return fmt.Errorf("register live poller: %w", err)
	}
	s.liveEntry = id
	log.Printf("[INFO] live polling started (%s)", s.LiveSpec)
	return nil
}

// StopLive removes the live poller.
func (s *Scheduler) StopLive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.liveEntry == 0 {
		return
	}
	s.Cron.Remove(s.liveEntry)
	s.liveEntry = 0
	log.Println("[INFO] live polling stopped")
}

// LiveRunning reports whether the live poller is registered.
func (s *Scheduler) LiveRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveEntry != 0
}

// StartViewingCheck registers the periodic results viewing check.
func (s *Scheduler) StartViewingCheck() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewEntry != 0 {
		return nil
	}
	id, err := s.Cron.AddFunc(s.ViewingSpec, s.checkViewing)
	if err != nil {
		return fmt.Errorf("register viewing check: %w", err)
	}
	s.viewEntry = id
	return nil
}

// StopViewingCheck removes the results viewing check.
func (s *Scheduler) StopViewingCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewEntry == 0 {
		return
	}
	s.Cron.Remove(s.viewEntry)
	s.viewEntry = 0
}

// pollLive runs one live update. At most one runs at a time.
func (s *Scheduler) pollLive() {
	if !s.polling.CompareAndSwap(false, true) {
		return
	}
	defer s.polling.Store(false)

	res, err := s.Game.Tick(s.Ctx)
	if err != nil {
		if game.IsRejected(err) {
			s.StopLive()
			return
		}
		log.Printf("[WARN] live update: %v", err)
		return
	}
	if res.Finished {
		s.StopLive()
		s.announceFinal(res.State)
		if err := s.StartViewingCheck(); err != nil {
			log.Printf("[ERROR] %v", err)
		}
	}
}

func (s *Scheduler) checkViewing() {
	if s.Game.State().Phase != model.PhaseResults {
		s.StopViewingCheck()
		return
	}
	if s.Game.RefreshScoreViewing(s.Ctx) {
		return
	}
	s.StopViewingCheck()
	s.trySend("⏰ The next game starts soon. Results are now hidden; /reset to draft again.")
}

func (s *Scheduler) announceFinal(st model.AppState) {
	s.trySend(notifier.FormatResults(st))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "/lineup":
		warning, err := s.Game.LoadLineup(ctx)
		if errors.Is(err, collector.ErrNoGame) {
			return "No game today."
		}
		if err != nil {
			return replyError(err)
		}
		return notifier.FormatLineup(s.Game.State(), warning)

	case "/rename":
		if len(args) < 2 {
			return "Usage: /rename &lt;slot&gt; &lt;name&gt;"
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return "Slot must be a number."
		}
		if err := s.Game.RenameBatter(ctx, slot, strings.Join(args[1:], " ")); err != nil {
			return replyError(err)
		}
		return notifier.FormatLineup(s.Game.State(), "")

	case "/draft":
		if err := s.Game.StartDraft(ctx); err != nil {
			return replyError(err)
		}
		return notifier.FormatLineup(s.Game.State(), "") + "\nPick 3 batters with /pick &lt;slot&gt;."

	case "/pick":
		if len(args) != 1 {
			return "Usage: /pick &lt;slot&gt;"
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return "Slot must be a number."
		}
		if err := s.Game.TogglePick(ctx, slot); err != nil {
			return replyError(err)
		}
		return notifier.FormatLineup(s.Game.State(), "")

	case "/done":
		if err := s.Game.FinishDraft(ctx); err != nil {
			return replyError(err)
		}
		return notifier.FormatBoosts(s.Game.State())

	case "/boost":
		if len(args) == 0 {
			return notifier.FormatBoosts(s.Game.State())
		}
		if len(args) != 2 {
			return "Usage: /boost &lt;slot&gt; &lt;percent&gt;"
		}
		slot, err1 := strconv.Atoi(args[0])
		value, err2 := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
		if err1 != nil || err2 != nil {
			return "Slot and percent must be numbers."
		}
		if err := s.Game.SetBoost(ctx, slot, value); err != nil {
			return replyError(err)
		}
		return notifier.FormatBoosts(s.Game.State())

	case "/live":
		if err := s.Game.StartLiveScoring(ctx); err != nil {
			return replyError(err)
		}
		if err := s.StartLive(); err != nil {
			log.Printf("[ERROR] %v", err)
			return "❌ could not start live polling"
		}
		return "🔴 Live scoring started."

	case "/stop":
		if err := s.Game.StopLiveScoring(ctx); err != nil {
			return replyError(err)
		}
		s.StopLive()
		return "⏸ Live scoring stopped."

	case "/score":
		st := s.Game.State()
		switch st.Phase {
		case model.PhaseLive:
			return notifier.FormatLive(st)
		case model.PhaseResults:
			if !s.Game.RefreshScoreViewing(ctx) {
				return "Results are hidden because the next game is about to start."
			}
			return notifier.FormatResults(st)
		default:
			return "No game in progress."
		}

	case "/history":
		return notifier.FormatHistory(s.History.GetRecent(ctx, 0))

	case "/stats":
		return notifier.FormatStats(s.History.GetStats(ctx))

	case "/reset":
		s.StopLive()
		s.StopViewingCheck()
		s.Game.ResetAll(ctx)
		return "🔄 Session reset."

	default:
		return notifier.HelpText
	}
}

func replyError(err error) string {
	var ae *game.ActionError
	if errors.As(err, &ae) {
		return "❌ " + ae.Reason
	}
	log.Printf("[ERROR] command failed: %v", err)
	return "❌ something went wrong, try again"
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
