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

type TypeTool struct{}

type TypeInput struct {
	Selector string `json:"selector" jsonschema:"required,description=CSS selector for input element"`
	Text     string `json:"text" jsonschema:"required,description=Text to type"`
	Clear    bool   `json:"clear" jsonschema:"default=true,description=Clear field before typing"`
	Timeout  int    `json:"timeout" jsonschema:"default=10000,description=Timeout to wait for element"`
}

type TypeResult struct {
	Success      bool   `json:"success"`
	ElementFound bool   `json:"element_found"`
	Error        string `json:"error,omitempty"`
}

func (r TypeResult) AssistantFacing() string {
	if !r.Success {
		return tools.StringifyToolResult("", r.Error)
	}
	return tools.StringifyToolResult("Text typed successfully", "")
}

func (r TypeResult) IsError() bool {
	return !r.Success
}

func (r TypeResult) GetError() string {
	return r.Error
}

func (r TypeResult) GetResult() string {
	if r.Success {
		return "typed"
	}
	return r.Error
}

func (t TypeTool) GenerateSchema() *jsonschema.Schema {
	return generateSchema[TypeInput]()
}

func (t TypeTool) Name() string {
	return "browser_type"
}

func (t TypeTool) Description() string {
	return `Type text into an input element identified by a CSS selector.

## Parameters
- selector: CSS selector for the input element (required)
- text: The text to type (required)
- clear: Clear the field before typing (default: true)
- timeout: Maximum wait time for the element in milliseconds (default: 10000)

## Notes
- The element must be an input, textarea or contenteditable element`
}

func (t TypeTool) ValidateInput(_ tools.State, parameters string) error {
	var input TypeInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	if input.Selector == "" {
		return fmt.Errorf("selector is required")
	}

	if input.Text == "" {
		return fmt.Errorf("text is required")
	}

	if input.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

func (t TypeTool) Execute(ctx context.Context, state tools.State, parameters string) tools.ToolResult {
	var input TypeInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return TypeResult{Success: false, Error: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if input.Timeout == 0 {
		input.Timeout = 10000
	}

	manager := GetManagerFromState(state)
	if err := manager.EnsureActive(ctx); err != nil {
		return TypeResult{Success: false, Error: fmt.Sprintf("failed to start browser: %v", err)}
	}

	browserCtx := manager.GetContext()
	if browserCtx == nil {
		return TypeResult{Success: false, Error: "browser context not available"}
	}

	timeout := time.Duration(input.Timeout) * time.Millisecond
	timeoutCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var editable bool
	err := chromedp.Run(timeoutCtx,
		chromedp.WaitVisible(input.Selector),
		chromedp.Evaluate(fmt.Sprintf(`(() => {
			const el = document.querySelector(%q);
			return el !== null && (el.tagName === 'INPUT' || el.tagName === 'TEXTAREA' || el.contentEditable === 'true');
		})()`, input.Selector), &editable),
	)

	if err != nil || !editable {
		logger.G(ctx).WithField("selector", input.Selector).WithError(err).Info("input element not found or not editable")
		return TypeResult{
			Success:      false,
			ElementFound: false,
			Error:        fmt.Sprintf("input element not found or not editable: %s", input.Selector),
		}
	}

	actions := []chromedp.Action{chromedp.Click(input.Selector)}
	if input.Clear {
		actions = append(actions, chromedp.Clear(input.Selector))
	}
	actions = append(actions, chromedp.SendKeys(input.Selector, input.Text))

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		logger.G(ctx).WithField("selector", input.Selector).WithError(err).Info("typing failed")
		return TypeResult{
			Success:      false,
			ElementFound: true,
			Error:        fmt.Sprintf("typing failed: %v", err),
		}
	}

	logger.G(ctx).WithField("selector", input.Selector).Info("text typed successfully")

	return TypeResult{
		Success:      true,
		ElementFound: true,
	}
}

func (t TypeTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input TypeInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	// the typed text may contain credentials, only record its length
	return []attribute.KeyValue{
		attribute.String("browser.type.selector", input.Selector),
		attribute.Int("browser.type.text_length", len(input.Text)),
		attribute.Bool("browser.type.clear", input.Clear),
	}, nil
}
