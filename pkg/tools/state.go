package tools

import (
	"context"
	"sync"

	"github.com/google/uuid"

	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

var _ tooltypes.State = &BasicState{}

// BasicState implements the State interface for CLI and MCP executions.
// The browser manager is created lazily by the first browser tool and shared
// by subsequent ones within the same process.
type BasicState struct {
	mu             sync.RWMutex
	sessionID      string
	tools          []tooltypes.Tool
	browserManager tooltypes.BrowserManager
	recorder       tooltypes.InvocationRecorder
}

// BasicStateOption configures a BasicState
type BasicStateOption func(s *BasicState)

// NewBasicState creates a new BasicState with the given options
func NewBasicState(ctx context.Context, opts ...BasicStateOption) *BasicState {
	state := &BasicState{
		sessionID: uuid.New().String(),
	}

	for _, opt := range opts {
		opt(state)
	}

	if len(state.tools) == 0 {
		state.tools = GetMainTools()
	}

	return state
}

// WithTools returns an option that restricts the state to the given tools
func WithTools(tools []tooltypes.Tool) BasicStateOption {
	return func(s *BasicState) {
		s.tools = tools
	}
}

// WithRecorder returns an option that attaches an invocation recorder
func WithRecorder(recorder tooltypes.InvocationRecorder) BasicStateOption {
	return func(s *BasicState) {
		s.recorder = recorder
	}
}

// SessionID returns the unique identifier of this state
func (s *BasicState) SessionID() string {
	return s.sessionID
}

// Tools returns the tools available to this state
func (s *BasicState) Tools() []tooltypes.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tools
}

// GetBrowserManager returns the shared browser manager, or nil if none started
func (s *BasicState) GetBrowserManager() tooltypes.BrowserManager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.browserManager
}

// SetBrowserManager stores the shared browser manager
func (s *BasicState) SetBrowserManager(manager tooltypes.BrowserManager) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.browserManager = manager
}

// Recorder returns the invocation recorder, or nil when recording is disabled
func (s *BasicState) Recorder() tooltypes.InvocationRecorder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recorder
}

// Close stops the shared browser session if one was started.
func (s *BasicState) Close() {
	if manager := s.GetBrowserManager(); manager != nil {
		manager.Stop()
	}
}
