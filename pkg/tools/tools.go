// Package tools provides the skill execution framework: tool registration,
// input validation, traced execution, and invocation recording.
package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/telemetry"
	"github.com/skillet-dev/skillet/pkg/tools/browser"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// GenerateSchema reflects a JSON schema from a tool input struct.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

// toolRegistry holds all available tools mapped by their names
var toolRegistry = map[string]tooltypes.Tool{
	"list_files":         &ListFilesTool{},
	"file_statistics":    &FileStatisticsTool{},
	"create_folder":      &CreateFolderTool{},
	"move_file":          &MoveFileTool{},
	"write_requirements": &WriteRequirementsTool{},
	"check_models":       &CheckModelsTool{},
	"browser_navigate":   &browser.NavigateTool{},
	"browser_click":      &browser.ClickTool{},
	"browser_type":       &browser.TypeTool{},
	"browser_screenshot": &browser.ScreenshotTool{},
	"browser_wait_for":   &browser.WaitForTool{},
	"browser_get_page":   &browser.GetPageTool{},
}

// defaultToolNames fixes the ordering of the registry for stable CLI and MCP listings
var defaultToolNames = []string{
	"list_files",
	"file_statistics",
	"create_folder",
	"move_file",
	"write_requirements",
	"check_models",
	"browser_navigate",
	"browser_click",
	"browser_type",
	"browser_screenshot",
	"browser_wait_for",
	"browser_get_page",
}

// GetMainTools returns all registered tools in their canonical order.
func GetMainTools() []tooltypes.Tool {
	tools := make([]tooltypes.Tool, 0, len(defaultToolNames))
	for _, name := range defaultToolNames {
		tools = append(tools, toolRegistry[name])
	}
	return tools
}

// ValidateTools checks that every name refers to a registered tool.
func ValidateTools(toolNames []string) error {
	for _, toolName := range toolNames {
		if _, exists := toolRegistry[toolName]; !exists {
			return errors.Errorf("unknown tool: %s", toolName)
		}
	}
	return nil
}

func findTool(name string, state tooltypes.State) (tooltypes.Tool, error) {
	for _, tool := range state.Tools() {
		if tool.Name() == name {
			return tool, nil
		}
	}
	return nil, errors.Errorf("tool %s not found", name)
}

// frameworkResult reports failures that happen before a tool executes
// (unknown tool, invalid parameters).
type frameworkResult struct {
	err string
}

func (r frameworkResult) GetResult() string { return "" }
func (r frameworkResult) GetError() string  { return r.err }
func (r frameworkResult) IsError() bool     { return true }
func (r frameworkResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult("", r.err)
}

// RunTool validates parameters and executes the named tool inside a span,
// recording the invocation outcome if the state carries a recorder.
func RunTool(ctx context.Context, state tooltypes.State, name string, parameters string) tooltypes.ToolResult {
	tool, err := findTool(name, state)
	if err != nil {
		return frameworkResult{err: err.Error()}
	}

	if err := tool.ValidateInput(state, parameters); err != nil {
		return frameworkResult{err: errors.Wrap(err, "invalid input").Error()}
	}

	attrs := []attribute.KeyValue{attribute.String("tool.name", name)}
	if kvs, err := tool.TracingKVs(parameters); err == nil {
		attrs = append(attrs, kvs...)
	}

	tracer := telemetry.Tracer("skillet.tools")
	ctx, span := tracer.Start(ctx, "tool.execute")
	span.SetAttributes(attrs...)
	defer span.End()

	start := time.Now()
	result := tool.Execute(ctx, state, parameters)
	elapsed := time.Since(start)

	if result.IsError() {
		span.SetStatus(codes.Error, result.GetError())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	recordInvocation(ctx, state, tooltypes.Invocation{
		ID:         uuid.New().String(),
		Tool:       name,
		Parameters: parameters,
		Success:    !result.IsError(),
		Error:      result.GetError(),
		DurationMS: elapsed.Milliseconds(),
	})

	return result
}

func recordInvocation(ctx context.Context, state tooltypes.State, inv tooltypes.Invocation) {
	recorder := state.Recorder()
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, inv); err != nil {
		logger.G(ctx).WithError(err).WithField("tool", inv.Tool).Warn("failed to record invocation")
	}
}
