package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// requirementPattern accepts a package name optionally followed by a version
// pin, e.g. "requests" or "requests==2.31.0".
var requirementPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(==[A-Za-z0-9][A-Za-z0-9._+-]*)?$`)

// WriteRequirementsToolResult represents the result of a manifest write
type WriteRequirementsToolResult struct {
	path     string
	packages []string
	err      string
}

// GetResult returns a success message with the written entries
func (r *WriteRequirementsToolResult) GetResult() string {
	return fmt.Sprintf("wrote %d requirements to %s:\n%s",
		len(r.packages), r.path, strings.Join(r.packages, "\n"))
}

// GetError returns the error message
func (r *WriteRequirementsToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *WriteRequirementsToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *WriteRequirementsToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// WriteRequirementsTool writes a dependency manifest with one entry per line
type WriteRequirementsTool struct{}

// WriteRequirementsInput defines the input parameters for the write_requirements tool
type WriteRequirementsInput struct {
	Path     string   `json:"path" jsonschema:"required,description=The manifest file to write (e.g. requirements.txt)"`
	Packages []string `json:"packages" jsonschema:"required,description=Package entries such as requests or requests==2.31.0"`
}

// Name returns the name of the tool
func (t *WriteRequirementsTool) Name() string {
	return "write_requirements"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *WriteRequirementsTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[WriteRequirementsInput]()
}

// Description returns the description of the tool
func (t *WriteRequirementsTool) Description() string {
	return `Write a dependency manifest file with one package entry per line.

This tool takes two parameters:
- path: The manifest file to write, e.g. "requirements.txt". An existing file is overwritten.
- packages: The package entries. Each entry is a bare name ("requests") or a pinned version ("requests==2.31.0").

All entries are validated before anything is written; invalid entries are reported together and nothing is changed.`
}

// ValidateInput validates the input parameters, aggregating per-entry errors
func (t *WriteRequirementsTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input WriteRequirementsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	if input.Path == "" {
		return errors.New("path is required")
	}
	if len(input.Packages) == 0 {
		return errors.New("at least one package is required")
	}

	var result *multierror.Error
	for _, pkg := range input.Packages {
		if !requirementPattern.MatchString(pkg) {
			result = multierror.Append(result, errors.Errorf("invalid package entry: %q", pkg))
		}
	}
	return result.ErrorOrNil()
}

// Execute writes the manifest
func (t *WriteRequirementsTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input WriteRequirementsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &WriteRequirementsToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if err := t.ValidateInput(state, parameters); err != nil {
		return &WriteRequirementsToolResult{err: err.Error()}
	}

	content := strings.Join(input.Packages, "\n") + "\n"
	if err := os.WriteFile(input.Path, []byte(content), 0o644); err != nil {
		return &WriteRequirementsToolResult{err: errors.Wrapf(err, "failed to write %s", input.Path).Error()}
	}

	return &WriteRequirementsToolResult{path: input.Path, packages: input.Packages}
}

// TracingKVs returns tracing attributes for the input
func (t *WriteRequirementsTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input WriteRequirementsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("write_requirements.path", input.Path),
		attribute.Int("write_requirements.packages", len(input.Packages)),
	}, nil
}
