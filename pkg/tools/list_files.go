package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/scanner"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// ListFilesToolResult represents the result of a directory listing
type ListFilesToolResult struct {
	files []string
	err   string
}

// GetResult returns the listing in the format the CLI prints verbatim:
// a count line followed by one relative path per line.
func (r *ListFilesToolResult) GetResult() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d files:", len(r.files))
	for _, file := range r.files {
		sb.WriteString("\n")
		sb.WriteString(file)
	}
	return sb.String()
}

// Files returns the sorted relative paths
func (r *ListFilesToolResult) Files() []string {
	return r.files
}

// GetError returns the error message
func (r *ListFilesToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *ListFilesToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *ListFilesToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// ListFilesTool lists all files under a directory recursively
type ListFilesTool struct{}

// ListFilesInput defines the input parameters for the list_files tool
type ListFilesInput struct {
	Directory     string `json:"directory" jsonschema:"required,description=The directory to list recursively"`
	IncludeHidden bool   `json:"include_hidden" jsonschema:"default=false,description=Include files whose name starts with a period"`
	Pattern       string `json:"pattern" jsonschema:"description=Optional doublestar glob applied to relative paths (e.g. **/*.go)"`
}

// Name returns the name of the tool
func (t *ListFilesTool) Name() string {
	return "list_files"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *ListFilesTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ListFilesInput]()
}

// Description returns the description of the tool
func (t *ListFilesTool) Description() string {
	return `List all files under a directory recursively.

This tool takes the following parameters:
- directory: The directory to list. It must exist and be a directory.
- include_hidden: Whether to include files whose name starts with a period (default: false). Hidden directories are always descended into; only file names are filtered.
- pattern: Optional glob pattern matched against the relative paths, supporting ** (e.g. "**/*.txt").

The result is a count line followed by one path per line, relative to the directory, sorted lexicographically. Files directly under the directory appear as bare names without a "./" prefix.`
}

// ValidateInput validates the input parameters
func (t *ListFilesTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	if err := scanner.ValidateRoot(input.Directory); err != nil {
		return err
	}

	if input.Pattern != "" {
		if !doublestar.ValidatePattern(input.Pattern) {
			return errors.Errorf("invalid pattern: %s", input.Pattern)
		}
	}

	return nil
}

// Execute performs the listing
func (t *ListFilesTool) Execute(ctx context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &ListFilesToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if err := scanner.ValidateRoot(input.Directory); err != nil {
		return &ListFilesToolResult{err: err.Error()}
	}

	files := scanner.ListFiles(ctx, input.Directory, input.IncludeHidden)

	if input.Pattern != "" {
		matched := files[:0]
		for _, file := range files {
			if ok, err := doublestar.Match(input.Pattern, file); err == nil && ok {
				matched = append(matched, file)
			}
		}
		files = matched
	}

	return &ListFilesToolResult{files: files}
}

// TracingKVs returns tracing attributes for the input
func (t *ListFilesTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("list_files.directory", input.Directory),
		attribute.Bool("list_files.include_hidden", input.IncludeHidden),
		attribute.String("list_files.pattern", input.Pattern),
	}, nil
}
