package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	apperr "github.com/halverson/overtone/internal/errors"
)

// State identifies where the authorization flow currently is.
type State int

const (
	StateIdle State = iota
	StateAwaitingCode
	StateExchanging
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingCode:
		return "awaiting_code"
	case StateExchanging:
		return "exchanging"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CodeSource yields a single authorization code, or an error when the user
// cancels or the wait is abandoned.
type CodeSource interface {
	WaitCode(ctx context.Context) (string, error)
}

// Session owns the process's credentials. It is the only writer; every other
// component takes a fresh snapshot per use via Snapshot.
type Session struct {
	cfg        *Config
	storage    *Storage
	httpClient *http.Client
	logger     *log.Logger

	mu     sync.RWMutex
	state  State
	creds  Credentials
	reason string
}

// NewSession creates a session in the idle state.
func NewSession(cfg *Config, storage *Storage, httpClient *http.Client, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		cfg:        cfg,
		storage:    storage,
		httpClient: httpClient,
		logger:     logger,
	}
}

// State returns the current flow state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reason returns the display reason for a failed flow.
func (s *Session) Reason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Snapshot returns the current credentials.
func (s *Session) Snapshot() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Restore seeds the session from a previously stored record. Returns false
// when no usable record exists, in which case Begin should run.
func (s *Session) Restore() bool {
	creds, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("could not load stored credentials", "err", err)
		}
		return false
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.creds = creds
	s.reason = ""
	s.mu.Unlock()

	s.logger.Info("using saved credentials")
	return true
}

// Begin runs the authorization flow to completion: open the authorize URL,
// wait for the code, exchange it, persist the result. It blocks and is meant
// to run off the UI goroutine. Failures end in StateFailed with a short
// display reason; they never panic.
func (s *Session) Begin(ctx context.Context, open func(url string) error, codes CodeSource) error {
	s.setState(StateAwaitingCode)

	authURL := s.cfg.BuildAuthURL()
	s.logger.Debug("starting authorization", "url", authURL)

	if err := open(authURL); err != nil {
		// Not fatal: the user can still reach the URL by hand.
		s.logger.Warn("could not open browser", "err", err)
	}

	code, err := codes.WaitCode(ctx)
	if err != nil {
		return s.fail(apperr.New(apperr.KindAuthCancelled, "Authorization cancelled"))
	}
	s.logger.Debug("received authorization code")

	s.setState(StateExchanging)
	creds, err := ExchangeCode(ctx, s.httpClient, s.cfg, code)
	if err != nil {
		return s.fail(apperr.New(apperr.KindAuth, apperr.Truncate(err.Error(), apperr.DisplayLimit)))
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.creds = creds
	s.reason = ""
	s.mu.Unlock()

	if err := s.storage.Save(creds); err != nil {
		s.logger.Error("failed to save credentials", "err", err)
	}

	s.logger.Info("authenticated with spotify")
	return nil
}

// Clear drops in-memory credentials and deletes the stored record.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.state = StateIdle
	s.creds = Credentials{}
	s.reason = ""
	s.mu.Unlock()

	return s.storage.Delete()
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) fail(e *apperr.Error) error {
	s.mu.Lock()
	s.state = StateFailed
	s.reason = e.Detail
	s.mu.Unlock()

	s.logger.Error("authorization failed", "reason", e.Detail)
	return e
}
