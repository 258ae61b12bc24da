// Package tools defines the shared contracts of the skill tool framework:
// the Tool interface, tool results, and the execution state handed to tools.
package tools

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"
)

// Tool is one automation skill exposed to the CLI and to MCP clients.
type Tool interface {
	GenerateSchema() *jsonschema.Schema
	Name() string
	Description() string
	ValidateInput(state State, parameters string) error
	Execute(ctx context.Context, state State, parameters string) ToolResult
	TracingKVs(parameters string) ([]attribute.KeyValue, error)
}

// ToolResult is the outcome of one tool execution. Errors are carried in the
// result value rather than as Go errors so a calling agent always receives a
// well-formed response.
type ToolResult interface {
	GetResult() string
	GetError() string
	IsError() bool
	AssistantFacing() string
}

// StringifyToolResult renders a result in the tagged format consumed by
// calling agents.
func StringifyToolResult(result, errMsg string) string {
	out := ""
	if errMsg != "" {
		out = fmt.Sprintf("<error>\n%s\n</error>\n", errMsg)
	}
	if result != "" {
		out += fmt.Sprintf("<result>\n%s\n</result>\n", result)
	}
	if out == "" {
		out = "<result>\n</result>\n"
	}
	return out
}

// BrowserManager owns a browser session shared by the browser tools.
type BrowserManager interface {
	Start(ctx context.Context) error
	Stop()
	GetContext() context.Context
	IsActive() bool
	EnsureActive(ctx context.Context) error
}

// InvocationRecorder persists tool invocation outcomes. Implemented by the
// history store; a nil recorder disables recording.
type InvocationRecorder interface {
	Record(ctx context.Context, inv Invocation) error
}

// Invocation describes one completed tool execution.
type Invocation struct {
	ID         string
	Tool       string
	Parameters string
	Success    bool
	Error      string
	DurationMS int64
}

// State carries cross-tool execution state: the registered tools, the shared
// browser session, and the invocation recorder.
type State interface {
	Tools() []Tool
	GetBrowserManager() BrowserManager
	SetBrowserManager(manager BrowserManager)
	Recorder() InvocationRecorder
}
