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

// CreateFolderToolResult represents the result of a folder creation
type CreateFolderToolResult struct {
	path    string
	existed bool
	err     string
}

// GetResult returns a success message
func (r *CreateFolderToolResult) GetResult() string {
	if r.existed {
		return fmt.Sprintf("folder %s already exists", r.path)
	}
	return fmt.Sprintf("folder %s has been created", r.path)
}

// GetError returns the error message
func (r *CreateFolderToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *CreateFolderToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *CreateFolderToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// CreateFolderTool creates a directory, including missing parents
type CreateFolderTool struct{}

// CreateFolderInput defines the input parameters for the create_folder tool
type CreateFolderInput struct {
	Path string `json:"path" jsonschema:"required,description=The path of the folder to create"`
}

// Name returns the name of the tool
func (t *CreateFolderTool) Name() string {
	return "create_folder"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *CreateFolderTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[CreateFolderInput]()
}

// Description returns the description of the tool
func (t *CreateFolderTool) Description() string {
	return `Create a folder at the given path, creating missing parent folders as needed.

This tool takes one parameter:
- path: The path of the folder to create.

Creating a folder that already exists is not an error. The tool fails if the path exists and is a regular file. Folders are created with 0755 permissions.`
}

// ValidateInput validates the input parameters
func (t *CreateFolderTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input CreateFolderInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	if input.Path == "" {
		return errors.New("path is required")
	}

	return nil
}

// Execute creates the folder
func (t *CreateFolderTool) Execute(_ context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input CreateFolderInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &CreateFolderToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	path := filepath.Clean(input.Path)

	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return &CreateFolderToolResult{err: fmt.Sprintf("%s already exists and is not a folder", path)}
		}
		return &CreateFolderToolResult{path: path, existed: true}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return &CreateFolderToolResult{err: errors.Wrapf(err, "failed to create folder %s", path).Error()}
	}

	return &CreateFolderToolResult{path: path}
}

// TracingKVs returns tracing attributes for the input
func (t *CreateFolderTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input CreateFolderInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("create_folder.path", input.Path),
	}, nil
}
