package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

func startCallbackServer(t *testing.T) *CallbackServer {
	t.Helper()
	cs, err := NewCallbackServer(0)
	if err != nil {
		t.Fatalf("NewCallbackServer failed: %v", err)
	}
	cs.Start()
	t.Cleanup(func() { _ = cs.Shutdown(context.Background()) })
	return cs
}

func TestCallbackDeliversCode(t *testing.T) {
	cs := startCallbackServer(t)

	url := fmt.Sprintf("http://127.0.0.1:%d/callback?code=abc123", cs.Port())
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	// The code is echoed so the user can paste it manually.
	if string(body) != "abc123" {
		t.Errorf("body = %q, want the code echoed back", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err := cs.WaitCode(ctx)
	if err != nil {
		t.Fatalf("WaitCode failed: %v", err)
	}
	if code != "abc123" {
		t.Errorf("code = %q, want abc123", code)
	}
}

func TestCallbackErrorParam(t *testing.T) {
	cs := startCallbackServer(t)

	url := fmt.Sprintf("http://127.0.0.1:%d/callback?error=access_denied", cs.Port())
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := cs.WaitCode(ctx); err == nil {
		t.Error("WaitCode should fail when the redirect carries an error")
	}
}

func TestCallbackRejectsNonGet(t *testing.T) {
	cs := startCallbackServer(t)

	url := fmt.Sprintf("http://127.0.0.1:%d/callback", cs.Port())
	resp, err := http.Post(url, "text/plain", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestCallbackDuplicateRedirects(t *testing.T) {
	cs := startCallbackServer(t)

	for _, code := range []string{"first", "second"} {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=%s", cs.Port(), code))
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err := cs.WaitCode(ctx)
	if err != nil {
		t.Fatalf("WaitCode failed: %v", err)
	}
	if code != "first" {
		t.Errorf("code = %q, want the first delivery", code)
	}
}

func TestWaitCodeCancelled(t *testing.T) {
	cs := startCallbackServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cs.WaitCode(ctx); err == nil {
		t.Error("WaitCode should return the context error when cancelled")
	}
}
