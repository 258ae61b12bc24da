package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/models"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// CheckModelsToolResult represents the result of a model availability check
type CheckModelsToolResult struct {
	modelIDs []string
	err      string
}

// GetResult returns the available model IDs, one per line
func (r *CheckModelsToolResult) GetResult() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d models:", len(r.modelIDs))
	for _, id := range r.modelIDs {
		sb.WriteString("\n")
		sb.WriteString(id)
	}
	return sb.String()
}

// Models returns the sorted model IDs
func (r *CheckModelsToolResult) Models() []string {
	return r.modelIDs
}

// GetError returns the error message
func (r *CheckModelsToolResult) GetError() string {
	return r.err
}

// IsError returns true if the result contains an error
func (r *CheckModelsToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing returns the string representation for the calling agent
func (r *CheckModelsToolResult) AssistantFacing() string {
	var content string
	if !r.IsError() {
		content = r.GetResult()
	}
	return tooltypes.StringifyToolResult(content, r.GetError())
}

// CheckModelsTool queries an OpenAI-compatible endpoint for available models
type CheckModelsTool struct{}

// CheckModelsInput defines the input parameters for the check_models tool
type CheckModelsInput struct {
	BaseURL string `json:"base_url" jsonschema:"description=Override the configured API base URL"`
}

// Name returns the name of the tool
func (t *CheckModelsTool) Name() string {
	return "check_models"
}

// GenerateSchema generates the JSON schema for the tool's input parameters
func (t *CheckModelsTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[CheckModelsInput]()
}

// Description returns the description of the tool
func (t *CheckModelsTool) Description() string {
	return `Check which models an OpenAI-compatible API endpoint serves.

This tool takes one optional parameter:
- base_url: Override the configured API base URL for this call.

The endpoint and API key come from configuration (api.base_url / api.key) or the OPENAI_API_BASE / OPENAI_API_KEY environment variables. The result is the sorted list of model IDs the endpoint reports.`
}

// ValidateInput validates the input parameters
func (t *CheckModelsTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input CheckModelsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}
	return nil
}

// Execute queries the endpoint
func (t *CheckModelsTool) Execute(ctx context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input CheckModelsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &CheckModelsToolResult{err: fmt.Sprintf("failed to parse input: %v", err)}
	}

	cfg := models.ConfigFromViper()
	if input.BaseURL != "" {
		cfg.BaseURL = input.BaseURL
	}

	client, err := models.NewClient(cfg)
	if err != nil {
		return &CheckModelsToolResult{err: err.Error()}
	}

	ids, err := client.ListModels(ctx)
	if err != nil {
		return &CheckModelsToolResult{err: err.Error()}
	}

	return &CheckModelsToolResult{modelIDs: ids}
}

// TracingKVs returns tracing attributes for the input
func (t *CheckModelsTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input CheckModelsInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("check_models.base_url", input.BaseURL),
	}, nil
}
