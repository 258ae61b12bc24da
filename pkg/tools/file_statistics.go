package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/scanner"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// FileStatisticsToolResult represents the result of a statistics scan
type FileStatisticsToolResult struct {
	stats scanner.Stats
	err   string
}

// GetResult returns the three labeled lines the CLI prints verbatim.
func (r *FileStatisticsToolResult) GetResult() string {
	return fmt.Sprintf("total number of files: %d\ntotal number of folders: %d\ntotal size of all files: %d",
		r.stats.Files, r.stats.Folders, r.stats.TotalSize)
}

// Stats returns the aggregate counts
func (r *FileStatisticsToolResult) Stats() scanner.Stats {
	return r.stats
}

// GetError returns the error message
func (r *FileStatisticsToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *FileStatisticsToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *FileStatisticsToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// FileStatisticsTool computes aggregate counts and sizes for a directory tree
type FileStatisticsTool struct{}

// FileStatisticsInput defines the input parameters for the file_statistics tool
type FileStatisticsInput struct {
	Directory string `json:"directory" jsonschema:"required,description=The directory to scan"`
}

// Name returns the name of the tool
func (t *FileStatisticsTool) Name() string {
	return "file_statistics"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *FileStatisticsTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[FileStatisticsInput]()
}

// Description returns the description of the tool
func (t *FileStatisticsTool) Description() string {
	return `Compute aggregate statistics for a directory tree.

This tool takes one parameter:
- directory: The directory to scan. It must exist and be a directory.

It reports three numbers:
- total number of files, excluding ".DS_Store" metadata entries
- total number of folders strictly under the directory (the directory itself is not counted)
- total size of all files in bytes, including ".DS_Store" entries

Files whose metadata cannot be read are skipped for sizing; the scan still succeeds.`
}

// ValidateInput validates the input parameters
func (t *FileStatisticsTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input FileStatisticsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	return scanner.ValidateRoot(input.Directory)
}

// Execute performs the scan
func (t *FileStatisticsTool) Execute(ctx context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input FileStatisticsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &FileStatisticsToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if err := scanner.ValidateRoot(input.Directory); err != nil {
		return &FileStatisticsToolResult{err: err.Error()}
	}

	return &FileStatisticsToolResult{stats: scanner.Statistics(ctx, input.Directory)}
}

// TracingKVs returns tracing attributes for the input
func (t *FileStatisticsTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input FileStatisticsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("file_statistics.directory", input.Directory),
	}, nil
}
