// Package poller drives the recurring now-playing fetch. It emits one update
// per tick on a channel; the overlay's UI goroutine drains the channel and is
// the only place view state changes.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/overtone/internal/core"
	"github.com/halverson/overtone/internal/spotify/client"

	apperr "github.com/halverson/overtone/internal/errors"
)

// DefaultInterval is the overlay refresh cadence.
const DefaultInterval = 2 * time.Second

// Update is the single result of one poll tick: either a track state or a
// typed error, never both.
type Update struct {
	Track core.TrackState
	Err   *apperr.Error
}

// Poller fetches now-playing state on a fixed-delay timer. The first tick
// fires immediately; ticks are serialized, so a slow response delays the next
// tick rather than overlapping it.
type Poller struct {
	client   *client.Client
	tokens   client.TokenSource
	interval time.Duration
	logger   *log.Logger

	updates  chan Update
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a poller. A non-positive interval falls back to
// DefaultInterval.
func New(c *client.Client, tokens client.TokenSource, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		client:   c,
		tokens:   tokens,
		interval: interval,
		logger:   logger,
		updates:  make(chan Update, 16),
		done:     make(chan struct{}),
	}
}

// Updates returns the channel of poll results. Closed when Run returns.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Run polls until the context is cancelled or Stop is called. The timer is
// re-armed after each tick completes, giving fixed-delay rather than
// fixed-rate scheduling.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.updates)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-timer.C:
			p.tick(ctx)
			timer.Reset(p.interval)
		}
	}
}

// Stop terminates the poll loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

// tick performs one poll. With no access token held the tick skips silently;
// every other outcome becomes exactly one update. Nothing escapes the tick.
func (p *Poller) tick(ctx context.Context) {
	if p.tokens.Snapshot().Empty() {
		return
	}

	track, aerr := p.client.CurrentlyPlaying(ctx)
	if aerr != nil {
		p.logger.Debug("poll failed", "kind", aerr.Kind, "detail", aerr.Detail)
		p.send(Update{Err: aerr})
		return
	}
	p.send(Update{Track: track})
}

func (p *Poller) send(u Update) {
	select {
	case p.updates <- u:
	default:
		// Drop when the consumer lags; the next tick supersedes this one.
	}
}
