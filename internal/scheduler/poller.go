package scheduler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/courtside/internal/service"
)

// Snapshotter produces live-score snapshots
type Snapshotter interface {
	Live(ctx context.Context) *service.LiveView
}

// Broadcaster fans a snapshot out to connected clients
type Broadcaster interface {
	Broadcast(view *service.LiveView)
}

// Publisher appends snapshots and finished games to a stream
type Publisher interface {
	PublishLiveUpdate(ctx context.Context, view *service.LiveView) error
	PublishFinal(ctx context.Context, game service.LiveGame) error
}

// Config holds poller configuration
type Config struct {
	LivePollInterval  time.Duration // Default: 30s
	EnableLivePolling bool          // Default: true
}

// DefaultConfig returns default poller configuration
func DefaultConfig() *Config {
	return &Config{
		LivePollInterval:  30 * time.Second,
		EnableLivePolling: true,
	}
}

// LivePoller refreshes the live snapshot on a fixed interval. A tick does
// not wait for the previous poll, so polls may overlap; whichever finishes
// last becomes the latest snapshot.
type LivePoller struct {
	source    Snapshotter
	config    *Config
	hub       Broadcaster
	publisher Publisher

	latest atomic.Pointer[service.LiveView]
	polls  atomic.Int64
	finals sync.Map // event id -> struct{}

	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewLivePoller creates a poller over source
func NewLivePoller(source Snapshotter, config *Config) *LivePoller {
	if config == nil {
		config = DefaultConfig()
	}
	if config.LivePollInterval <= 0 {
		config.LivePollInterval = DefaultConfig().LivePollInterval
	}
	return &LivePoller{source: source, config: config}
}

// SetBroadcaster attaches the hub snapshots are pushed to
func (p *LivePoller) SetBroadcaster(b Broadcaster) { p.hub = b }

// SetPublisher attaches the stream snapshots are appended to
func (p *LivePoller) SetPublisher(pub Publisher) { p.publisher = pub }

// Start polls immediately and then on every tick until ctx is cancelled or
// Stop is called. It blocks.
func (p *LivePoller) Start(ctx context.Context) {
	if !p.config.EnableLivePolling {
		log.Println("[poller] live polling disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	log.Printf("[poller] → live polling started (interval: %v)", p.config.LivePollInterval)

	ticker := time.NewTicker(p.config.LivePollInterval)
	defer ticker.Stop()

	p.spawn(ctx)
	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			log.Println("[poller] → live polling stopped")
			return
		case <-ticker.C:
			p.spawn(ctx)
		}
	}
}

func (p *LivePoller) spawn(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Poll(ctx)
	}()
}

// Poll takes one snapshot, stores it as the latest and fans it out
func (p *LivePoller) Poll(ctx context.Context) *service.LiveView {
	view := p.source.Live(ctx)
	if view == nil || ctx.Err() != nil {
		return view
	}
	p.latest.Store(view)
	p.polls.Add(1)

	if p.hub != nil {
		p.hub.Broadcast(view)
	}
	if p.publisher != nil {
		p.publish(ctx, view)
	}

	if len(view.Games) > 0 {
		log.Printf("[poller] ✓ %d games (%s)", len(view.Games), view.Source)
	}
	return view
}

func (p *LivePoller) publish(ctx context.Context, view *service.LiveView) {
	if err := p.publisher.PublishLiveUpdate(ctx, view); err != nil {
		log.Printf("[poller] ⚠️  publish snapshot: %v", err)
	}
	for _, game := range view.Games {
		if game.State != "post" {
			continue
		}
		if _, seen := p.finals.LoadOrStore(game.ID, struct{}{}); seen {
			continue
		}
		if err := p.publisher.PublishFinal(ctx, game); err != nil {
			p.finals.Delete(game.ID)
			log.Printf("[poller] ⚠️  publish final %s: %v", game.ID, err)
		}
	}
}

// Latest is the most recently completed snapshot, or nil before the first
func (p *LivePoller) Latest() *service.LiveView {
	return p.latest.Load()
}

// Stop cancels polling
func (p *LivePoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Status reports poller configuration and progress
func (p *LivePoller) Status() map[string]interface{} {
	status := map[string]interface{}{
		"live_polling_enabled": p.config.EnableLivePolling,
		"live_poll_interval":   p.config.LivePollInterval.String(),
		"polls_completed":      p.polls.Load(),
	}
	if latest := p.Latest(); latest != nil {
		status["last_update"] = latest.UpdatedAt
		status["last_source"] = latest.Source
	}
	return status
}
