package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/service"
)

type countingSource struct {
	calls atomic.Int64
	games []service.LiveGame
}

func (s *countingSource) Live(context.Context) *service.LiveView {
	n := s.calls.Add(1)
	return &service.LiveView{
		TeamID:    "41",
		UpdatedAt: time.Unix(n, 0),
		Source:    service.LiveSourceScoreboard,
		Games:     s.games,
	}
}

type recordingHub struct {
	mu    sync.Mutex
	views []*service.LiveView
}

func (h *recordingHub) Broadcast(view *service.LiveView) {
	h.mu.Lock()
	h.views = append(h.views, view)
	h.mu.Unlock()
}

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots int
	finals    []string
	failFinal bool
}

func (p *recordingPublisher) PublishLiveUpdate(context.Context, *service.LiveView) error {
	p.mu.Lock()
	p.snapshots++
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) PublishFinal(_ context.Context, game service.LiveGame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFinal {
		return errors.New("stream unavailable")
	}
	p.finals = append(p.finals, game.ID)
	return nil
}

func liveGame(id, state string) service.LiveGame {
	return service.LiveGame{GameCard: service.GameCard{ID: id, State: state}}
}

func TestLivePoller_PollStoresLatest(t *testing.T) {
	src := &countingSource{}
	hub := &recordingHub{}
	p := scheduler.NewLivePoller(src, nil)
	p.SetBroadcaster(hub)

	if p.Latest() != nil {
		t.Fatal("Latest() before any poll should be nil")
	}

	p.Poll(context.Background())
	second := p.Poll(context.Background())

	if p.Latest() != second {
		t.Errorf("Latest() = %v, want the last poll", p.Latest())
	}
	if len(hub.views) != 2 {
		t.Errorf("broadcasts = %d, want 2", len(hub.views))
	}
	if got := p.Status()["polls_completed"]; got != int64(2) {
		t.Errorf("polls_completed = %v, want 2", got)
	}
}

func TestLivePoller_PublishesEachFinalOnce(t *testing.T) {
	src := &countingSource{games: []service.LiveGame{liveGame("401", "post"), liveGame("402", "in")}}
	pub := &recordingPublisher{}
	p := scheduler.NewLivePoller(src, nil)
	p.SetPublisher(pub)

	for i := 0; i < 3; i++ {
		p.Poll(context.Background())
	}

	if pub.snapshots != 3 {
		t.Errorf("snapshots = %d, want 3", pub.snapshots)
	}
	if len(pub.finals) != 1 || pub.finals[0] != "401" {
		t.Errorf("finals = %v, want [401]", pub.finals)
	}
}

func TestLivePoller_RetriesFailedFinal(t *testing.T) {
	src := &countingSource{games: []service.LiveGame{liveGame("401", "post")}}
	pub := &recordingPublisher{failFinal: true}
	p := scheduler.NewLivePoller(src, nil)
	p.SetPublisher(pub)

	p.Poll(context.Background())
	pub.failFinal = false
	p.Poll(context.Background())

	if len(pub.finals) != 1 {
		t.Errorf("finals = %v, want one after the retry", pub.finals)
	}
}

func TestLivePoller_StartTicksUntilStopped(t *testing.T) {
	src := &countingSource{}
	p := scheduler.NewLivePoller(src, &scheduler.Config{
		LivePollInterval:  5 * time.Millisecond,
		EnableLivePolling: true,
	})

	done := make(chan struct{})
	go func() {
		p.Start(context.Background())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for src.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d polls before deadline", src.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	p.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
	if p.Latest() == nil {
		t.Error("Latest() = nil after polling")
	}
}

func TestLivePoller_Disabled(t *testing.T) {
	src := &countingSource{}
	p := scheduler.NewLivePoller(src, &scheduler.Config{LivePollInterval: time.Millisecond})

	p.Start(context.Background())

	if n := src.calls.Load(); n != 0 {
		t.Errorf("polls = %d, want 0 when disabled", n)
	}
}
