package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/types/tools"
)

type WaitForTool struct{}

type WaitForInput struct {
	Condition string `json:"condition" jsonschema:"required,enum=page_load,enum=element_visible,enum=element_hidden,description=Condition to wait for"`
	Selector  string `json:"selector" jsonschema:"description=CSS selector (required for element conditions)"`
	Timeout   int    `json:"timeout" jsonschema:"default=30000,description=Maximum time to wait"`
}

type WaitForResult struct {
	Success      bool   `json:"success"`
	ConditionMet bool   `json:"condition_met"`
	Error        string `json:"error,omitempty"`
}

func (r WaitForResult) AssistantFacing() string {
	if !r.Success {
		return tools.StringifyToolResult("", r.Error)
	}
	if !r.ConditionMet {
		return tools.StringifyToolResult("Wait timeout - condition not met", "")
	}
	return tools.StringifyToolResult("Wait condition met successfully", "")
}

func (r WaitForResult) IsError() bool {
	return !r.Success
}

func (r WaitForResult) GetError() string {
	return r.Error
}

func (r WaitForResult) GetResult() string {
	if !r.Success {
		return r.Error
	}
	if !r.ConditionMet {
		return "Wait timeout - condition not met"
	}
	return "Wait condition met successfully"
}

func (t WaitForTool) GenerateSchema() *jsonschema.Schema {
	return generateSchema[WaitForInput]()
}

func (t WaitForTool) Name() string {
	return "browser_wait_for"
}

func (t WaitForTool) Description() string {
	return `Wait for a page load or element condition before continuing.

## Parameters
- condition: "page_load", "element_visible" or "element_hidden" (required)
- selector: CSS selector, required for the element conditions
- timeout: Maximum wait time in milliseconds (default: 30000)`
}

func (t WaitForTool) ValidateInput(_ tools.State, parameters string) error {
	var input WaitForInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	if input.Condition == "" {
		return fmt.Errorf("condition is required")
	}

	switch input.Condition {
	case "page_load":
	case "element_visible", "element_hidden":
		if input.Selector == "" {
			return fmt.Errorf("selector is required for condition %s", input.Condition)
		}
	default:
		return fmt.Errorf("invalid condition: %s", input.Condition)
	}

	if input.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

func (t WaitForTool) Execute(ctx context.Context, state tools.State, parameters string) tools.ToolResult {
	var input WaitForInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return WaitForResult{Success: false, Error: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if input.Timeout == 0 {
		input.Timeout = 30000
	}

	manager := GetManagerFromState(state)
	if err := manager.EnsureActive(ctx); err != nil {
		return WaitForResult{Success: false, Error: fmt.Sprintf("failed to start browser: %v", err)}
	}

	browserCtx := manager.GetContext()
	if browserCtx == nil {
		return WaitForResult{Success: false, Error: "browser context not available"}
	}

	timeout := time.Duration(input.Timeout) * time.Millisecond
	timeoutCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var action chromedp.Action
	switch input.Condition {
	case "page_load":
		action = chromedp.WaitReady("body")
	case "element_visible":
		action = chromedp.WaitVisible(input.Selector)
	case "element_hidden":
		action = chromedp.WaitNotVisible(input.Selector)
	}

	if err := chromedp.Run(timeoutCtx, action); err != nil {
		if timeoutCtx.Err() == context.DeadlineExceeded {
			logger.G(ctx).WithField("condition", input.Condition).Info("wait condition timed out")
			return WaitForResult{Success: true, ConditionMet: false}
		}
		return WaitForResult{Success: false, Error: fmt.Sprintf("wait failed: %v", err)}
	}

	return WaitForResult{Success: true, ConditionMet: true}
}

func (t WaitForTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input WaitForInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("browser.wait_for.condition", input.Condition),
		attribute.String("browser.wait_for.selector", input.Selector),
		attribute.Int("browser.wait_for.timeout", input.Timeout),
	}, nil
}
