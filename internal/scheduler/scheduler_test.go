package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"BatterBoost/internal/appstate"
	"BatterBoost/internal/collector"
	"BatterBoost/internal/game"
	"BatterBoost/internal/history"
	"BatterBoost/internal/model"
	"BatterBoost/internal/store"
)

const gamePk = 7001

var start = time.Date(2026, 6, 10, 18, 10, 0, 0, time.UTC)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func batters(stats map[int]model.BattingStats) []collector.MockBatter {
	var out []collector.MockBatter
	for i := 0; i < 9; i++ {
		id := 11 + i
		out = append(out, collector.MockBatter{ID: id, Name: string(rune('A' + i)), Stats: stats[id]})
	}
	return out
}

func newTestScheduler(t *testing.T) (*Scheduler, *collector.MockFetcher, *fakeNotifier) {
	t.Helper()
	now := start.Add(-2 * time.Hour)
	clock := func() time.Time { return now }

	var sched model.Schedule
	sched.Dates = []model.ScheduleDate{{Games: []model.ScheduleGame{
		collector.MockGame(gamePk, start.Format(time.RFC3339), model.GameStatePreview,
			model.TeamRef{ID: 142, Name: "Minnesota Twins"}, model.TeamRef{ID: 114, Name: "Cleveland Guardians"}),
	}}}
	f := &collector.MockFetcher{Schedules: map[string]*model.Schedule{"2026-06-10": &sched}}
	f.SetFeed(gamePk, collector.MockLiveFeed(model.GameStatePreview, model.SideHome, batters(nil)))

	s := store.NewMemoryStore()
	col := collector.NewCollector(f, 142, time.UTC)
	states := appstate.NewManager(s, col)
	states.Now = clock
	hist := history.NewManager(s, time.UTC)
	hist.Now = clock
	ctrl := game.NewController(col, states, hist)
	ctrl.Now = clock

	n := &fakeNotifier{}
	sc := NewScheduler(context.Background(), ctrl, hist, n, "@every 1h", "@every 1h")
	return sc, f, n
}

func run(t *testing.T, s *Scheduler, commands ...string) string {
	t.Helper()
	var reply string
	for _, c := range commands {
		reply = s.HandleCommand(context.Background(), c)
		if strings.HasPrefix(reply, "❌") {
			t.Fatalf("%s: %s", c, reply)
		}
	}
	return reply
}

func TestHandleCommand_DraftFlow(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	reply := run(t, s, "/lineup")
	if !strings.Contains(reply, "vs Cleveland Guardians") {
		t.Errorf("lineup reply missing opponent:\n%s", reply)
	}
	reply = run(t, s, "/draft", "/pick 1", "/pick 4", "/pick 7", "/done")
	if !strings.Contains(reply, "1. A: 34%") || !strings.Contains(reply, "Total: 100%") {
		t.Errorf("unexpected boosts after draft:\n%s", reply)
	}
	reply = run(t, s, "/boost 1 50%")
	if !strings.Contains(reply, "1. A: 50%") || !strings.Contains(reply, "Total: 100%") {
		t.Errorf("unexpected boosts after /boost:\n%s", reply)
	}
}

func TestHandleCommand_Rejections(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()

	if got := s.HandleCommand(ctx, "/pick 1"); got != "❌ picks can only change during the draft" {
		t.Errorf("pick in setup = %q", got)
	}
	if got := s.HandleCommand(ctx, "/pick one"); got != "Slot must be a number." {
		t.Errorf("bad slot = %q", got)
	}
	if got := s.HandleCommand(ctx, "/nonsense"); !strings.Contains(got, "/lineup") {
		t.Errorf("unknown command should return help, got %q", got)
	}
	if got := s.HandleCommand(ctx, "/score"); got != "No game in progress." {
		t.Errorf("score in setup = %q", got)
	}
}

func TestLivePollingToResults(t *testing.T) {
	s, f, n := newTestScheduler(t)
	run(t, s, "/lineup", "/draft", "/pick 1", "/pick 4", "/pick 7", "/done", "/live")
	if !s.LiveRunning() {
		t.Fatal("expected live poller to be registered")
	}

	f.SetFeed(gamePk, collector.MockLiveFeed(model.GameStateLive, model.SideHome,
		batters(map[int]model.BattingStats{11: {Hits: 1, HomeRuns: 1, RBI: 1, Runs: 1}})))
	s.pollLive()
	if reply := s.HandleCommand(context.Background(), "/score"); !strings.Contains(reply, "[HR]") {
		t.Errorf("live score missing home run:\n%s", reply)
	}

	f.SetFeed(gamePk, collector.MockLiveFeed(model.GameStateFinal, model.SideHome,
		batters(map[int]model.BattingStats{11: {Hits: 1, HomeRuns: 1, RBI: 1, Runs: 1}})))
	s.pollLive()

	if s.LiveRunning() {
		t.Error("expected live poller to stop after the final")
	}
	if s.Game.State().Phase != model.PhaseResults {
		t.Errorf("phase = %s, want results", s.Game.State().Phase)
	}
	if !strings.Contains(n.last(), "Game over") {
		t.Errorf("expected a results notification, got %q", n.last())
	}
	if reply := s.HandleCommand(context.Background(), "/history"); !strings.Contains(reply, "2026-06-10") {
		t.Errorf("history missing archived game:\n%s", reply)
	}
}

func TestStopAndReset(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	run(t, s, "/lineup", "/draft", "/pick 1", "/pick 4", "/pick 7", "/done", "/live", "/stop")
	if s.LiveRunning() {
		t.Error("expected live poller removed after /stop")
	}
	if s.Game.State().Phase != model.PhasePlay {
		t.Errorf("phase = %s, want play", s.Game.State().Phase)
	}

	run(t, s, "/reset")
	if s.Game.State().Phase != model.PhaseSetup {
		t.Errorf("phase = %s, want setup", s.Game.State().Phase)
	}
}

func TestPollLiveSkipsWhenNotLive(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	if err := s.StartLive(); err != nil {
		t.Fatal(err)
	}
	// A tick outside the live phase is rejected and unregisters the poller.
	s.pollLive()
	if s.LiveRunning() {
		t.Error("expected poller removed when the session is not live")
	}
}

func TestPollLiveSkipsWhileInFlight(t *testing.T) {
	s, f, _ := newTestScheduler(t)
	run(t, s, "/lineup", "/draft", "/pick 1", "/pick 4", "/pick 7", "/done", "/live")

	before := f.FeedCalls
	s.polling.Store(true)
	s.pollLive()
	if f.FeedCalls != before {
		t.Errorf("overlapping poll fetched the feed: calls %d -> %d", before, f.FeedCalls)
	}
	if !s.LiveRunning() || s.Game.State().Phase != model.PhaseLive {
		t.Error("a skipped poll must leave live scoring running")
	}

	s.polling.Store(false)
	s.pollLive()
	if f.FeedCalls != before+1 {
		t.Errorf("expected one fetch once the previous poll finished, calls %d -> %d", before, f.FeedCalls)
	}
	if s.polling.Load() {
		t.Error("in-flight flag must be released after a poll")
	}
}
