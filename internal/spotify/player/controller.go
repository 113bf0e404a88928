// Package player issues fire-and-forget playback commands against the
// Spotify API.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/overtone/internal/core"
	"github.com/halverson/overtone/internal/spotify/client"

	apperr "github.com/halverson/overtone/internal/errors"
)

// Result reports the outcome of a control command back to the UI. Playing is
// the remembered state after the command, the value the caller should use for
// its next toggle decision.
type Result struct {
	Intent  core.PlaybackIntent
	Playing bool
	Err     *apperr.Error
}

// Controller executes playback intents asynchronously. Commands run
// concurrently and unordered; there is no retry and no offline queue. The
// toggle direction comes from the last displayed state carried in the intent,
// never from the API.
type Controller struct {
	client *client.Client
	tokens client.TokenSource
	logger *log.Logger
	notify func(Result)

	mu      sync.Mutex
	playing bool
}

// New creates a controller. notify receives one Result per executed intent
// and is called from the command's goroutine.
func New(c *client.Client, tokens client.TokenSource, logger *log.Logger, notify func(Result)) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	if notify == nil {
		notify = func(Result) {}
	}
	return &Controller{
		client: c,
		tokens: tokens,
		logger: logger,
		notify: notify,
	}
}

// SetPlaying records the most recently displayed playing state.
func (c *Controller) SetPlaying(playing bool) {
	c.mu.Lock()
	c.playing = playing
	c.mu.Unlock()
}

// Playing returns the remembered playing state.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Execute runs the intent on its own goroutine and never blocks the caller.
func (c *Controller) Execute(intent core.PlaybackIntent) {
	go c.run(intent)
}

func (c *Controller) run(intent core.PlaybackIntent) {
	if c.tokens.Snapshot().Empty() {
		c.logger.Warn("playback command without credentials", "intent", intent.Kind)
		c.notify(Result{
			Intent:  intent,
			Playing: c.Playing(),
			Err:     apperr.New(apperr.KindNotAuthenticated, "Not Authenticated"),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.logger.Debug("sending playback command", "intent", intent.Kind)

	playing := c.Playing()
	var aerr *apperr.Error

	switch intent.Kind {
	case core.IntentPrevious:
		aerr = c.client.Previous(ctx)
	case core.IntentNext:
		aerr = c.client.Next(ctx)
	case core.IntentToggle:
		if intent.Playing {
			aerr = c.client.Pause(ctx)
		} else {
			aerr = c.client.Play(ctx)
		}
		// Only a successful toggle flips the remembered indicator.
		if aerr == nil {
			playing = !intent.Playing
			c.SetPlaying(playing)
		}
	}

	if aerr != nil {
		c.logger.Debug("playback command failed", "intent", intent.Kind, "err", aerr)
		aerr = apperr.New(aerr.Kind, apperr.Truncate(aerr.Detail, apperr.DisplayLimit))
	}

	c.notify(Result{Intent: intent, Playing: playing, Err: aerr})
}
