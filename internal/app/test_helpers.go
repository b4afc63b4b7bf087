package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/gitgraphgo/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging for tests. A nil cfg uses
// config.Default. It returns the App, its output buffer and its log buffer.
func SetupAppTest(t *testing.T, cfg *config.Config, opts ...Option) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Log.Level = "debug"

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	testApp := NewApp(outBuffer, logBuffer, cfg, opts...)

	t.Cleanup(func() {
		_ = testApp.Close()
		if os.Getenv("GITGRAPHGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
