package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// CallbackResult contains the result of the OAuth redirect.
type CallbackResult struct {
	Code string
	Err  string
}

// CallbackServer receives the single OAuth redirect from Spotify. The
// authorization code is echoed back as the response body so the user can also
// paste it manually.
type CallbackServer struct {
	server   *http.Server
	listener net.Listener
	result   chan CallbackResult
}

// NewCallbackServer creates a new callback server on the specified port.
// Failure to bind the port is fatal for the caller; there is no fallback
// listener.
func NewCallbackServer(port int) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	cs := &CallbackServer{
		listener: listener,
		result:   make(chan CallbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", cs.handleCallback)

	cs.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return cs, nil
}

// Start begins serving HTTP requests in the background.
func (cs *CallbackServer) Start() {
	go func() {
		_ = cs.server.Serve(cs.listener)
	}()
}

// WaitCode blocks until the redirect delivers a code or the context is
// cancelled. Implements the CodeSource used by Session.Begin.
func (cs *CallbackServer) WaitCode(ctx context.Context) (string, error) {
	select {
	case result := <-cs.result:
		if result.Err != "" {
			return "", fmt.Errorf("authorization failed: %s", result.Err)
		}
		return result.Code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Shutdown gracefully shuts down the server.
func (cs *CallbackServer) Shutdown(ctx context.Context) error {
	return cs.server.Shutdown(ctx)
}

// Port returns the port the server is listening on.
func (cs *CallbackServer) Port() int {
	return cs.listener.Addr().(*net.TCPAddr).Port
}

func (cs *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	result := CallbackResult{
		Code: query.Get("code"),
		Err:  query.Get("error"),
	}

	// Deliver once; duplicate redirects are dropped.
	select {
	case cs.result <- result:
	default:
	}

	if result.Err != "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, result.Err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, result.Code)
}
