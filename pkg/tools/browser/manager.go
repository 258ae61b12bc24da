// Package browser implements the browser automation skills on top of a
// shared headless Chrome session driven through chromedp.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skillet-dev/skillet/pkg/logger"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// startAttempts bounds the startup probe retries; a cold Chrome launch on a
// loaded machine occasionally misses the first navigation.
const startAttempts = 3

// Manager handles browser context and lifecycle
type Manager struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	allocCtx  context.Context
	mutex     sync.Mutex
	isActive  bool
}

var _ tooltypes.BrowserManager = (*Manager)(nil)

// NewManager creates a new browser manager instance
func NewManager() *Manager {
	return &Manager{}
}

// GetManagerFromState retrieves or creates a browser manager from the tool state
func GetManagerFromState(state tooltypes.State) tooltypes.BrowserManager {
	if manager := state.GetBrowserManager(); manager != nil {
		return manager
	}

	manager := NewManager()
	state.SetBrowserManager(manager)
	return manager
}

// Start initializes the browser context
func (m *Manager) Start(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.isActive {
		return nil
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "en-US,en"),
		chromedp.Flag("accept-lang", "en-US,en;q=0.9"),
	}

	allocCtx, _ := chromedp.NewExecAllocator(ctx, opts...)
	m.allocCtx = allocCtx

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	m.ctx = browserCtx
	m.cancelCtx = cancelCtx
	m.isActive = true

	// Probe the session before handing it out
	err := retry.Do(
		func() error {
			var title string
			return chromedp.Run(m.ctx, chromedp.Navigate("about:blank"), chromedp.Title(&title))
		},
		retry.Context(ctx),
		retry.Attempts(startAttempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		m.stopLocked()
		return errors.Wrap(err, "failed to start browser")
	}

	logger.G(ctx).Info("browser session started")
	return nil
}

// Stop shuts down the browser context
func (m *Manager) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if !m.isActive {
		return
	}

	if m.cancelCtx != nil {
		m.cancelCtx()
	}

	m.isActive = false
	m.ctx = nil
	m.cancelCtx = nil
	m.allocCtx = nil
}

// GetContext returns the browser context
func (m *Manager) GetContext() context.Context {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.ctx
}

// IsActive returns whether the browser is active
func (m *Manager) IsActive() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.isActive
}

// EnsureActive ensures the browser is running
func (m *Manager) EnsureActive(ctx context.Context) error {
	if !m.IsActive() {
		return m.Start(ctx)
	}
	return nil
}

// CreateScreenshotDir ensures the screenshots directory exists
func CreateScreenshotDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	screenshotDir := filepath.Join(homeDir, ".skillet", "screenshots")

	if err := os.MkdirAll(screenshotDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create screenshots directory")
	}

	return screenshotDir, nil
}

// GenerateScreenshotPath generates a unique screenshot file path
func GenerateScreenshotPath(format string) (string, error) {
	screenshotDir, err := CreateScreenshotDir()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), format)
	return filepath.Join(screenshotDir, filename), nil
}
