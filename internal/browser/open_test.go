package browser

import (
	"runtime"
	"testing"
)

func TestOpenUnsupportedPlatform(t *testing.T) {
	// Actually opening a browser is not testable in a unit test; verify the
	// supported-platform switch instead.
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		// Supported; Open would spawn a process here.
	default:
		if err := Open("https://example.com"); err == nil {
			t.Errorf("Open() on %s should fail", runtime.GOOS)
		}
	}
}
