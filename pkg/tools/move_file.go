package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// MoveFileToolResult represents the result of a file move
type MoveFileToolResult struct {
	source      string
	destination string
	err         string
}

// GetResult returns a success message
func (r *MoveFileToolResult) GetResult() string {
	return fmt.Sprintf("moved %s to %s", r.source, r.destination)
}

// GetError returns the error message
func (r *MoveFileToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *MoveFileToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *MoveFileToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// MoveFileTool moves a file to a new location
type MoveFileTool struct{}

// MoveFileInput defines the input parameters for the move_file tool
type MoveFileInput struct {
	Source      string `json:"source" jsonschema:"required,description=The file to move"`
	Destination string `json:"destination" jsonschema:"required,description=The destination path"`
}

// Name returns the name of the tool
func (t *MoveFileTool) Name() string {
	return "move_file"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *MoveFileTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[MoveFileInput]()
}

// Description returns the description of the tool
func (t *MoveFileTool) Description() string {
	return `Move a file to a new location.

This tool takes two parameters:
- source: The file to move. It must exist and be a regular file.
- destination: The path to move the file to. Missing parent folders are created.

The tool refuses to overwrite an existing destination. Use a different destination path or remove the existing file first.`
}

// ValidateInput validates the input parameters
func (t *MoveFileTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input MoveFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	if input.Source == "" {
		return errors.New("source is required")
	}
	if input.Destination == "" {
		return errors.New("destination is required")
	}

	return nil
}

// Execute moves the file
func (t *MoveFileTool) Execute(_ context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input MoveFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &MoveFileToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	info, err := os.Stat(input.Source)
	if err != nil {
		return &MoveFileToolResult{err: errors.Wrapf(err, "source %s does not exist", input.Source).Error()}
	}
	if info.IsDir() {
		return &MoveFileToolResult{err: fmt.Sprintf("source %s is a directory, not a file", input.Source)}
	}

	if _, err := os.Stat(input.Destination); err == nil {
		return &MoveFileToolResult{err: fmt.Sprintf("destination %s already exists", input.Destination)}
	}

	if err := os.MkdirAll(filepath.Dir(input.Destination), 0o755); err != nil {
		return &MoveFileToolResult{err: errors.Wrap(err, "failed to create destination folder").Error()}
	}

	if err := os.Rename(input.Source, input.Destination); err != nil {
		return &MoveFileToolResult{err: errors.Wrapf(err, "failed to move %s", input.Source).Error()}
	}

	return &MoveFileToolResult{source: input.Source, destination: input.Destination}
}

// TracingKVs returns tracing attributes for the input
func (t *MoveFileTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input MoveFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("move_file.source", input.Source),
		attribute.String("move_file.destination", input.Destination),
	}, nil
}
