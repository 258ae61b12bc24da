package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/chromedp/chromedp"
	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/types/tools"
)

const defaultMaxPageLength = 20000

type GetPageTool struct{}

type GetPageInput struct {
	Format    string `json:"format" jsonschema:"default=markdown,enum=markdown,enum=html,description=Output format for the page content"`
	MaxLength int    `json:"max_length" jsonschema:"default=20000,description=Maximum content length before truncation"`
}

type GetPageResult struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	Error     string `json:"error,omitempty"`
}

func (r GetPageResult) AssistantFacing() string {
	if !r.Success {
		return tools.StringifyToolResult("", r.Error)
	}
	result := fmt.Sprintf("URL: %s\nTitle: %s\n\n%s", r.URL, r.Title, r.Content)
	if r.Truncated {
		result += "\n\n[Content truncated]"
	}
	return tools.StringifyToolResult(result, "")
}

func (r GetPageResult) IsError() bool {
	return !r.Success
}

func (r GetPageResult) GetError() string {
	return r.Error
}

func (r GetPageResult) GetResult() string {
	return r.Content
}

func (t GetPageTool) GenerateSchema() *jsonschema.Schema {
	return generateSchema[GetPageInput]()
}

func (t GetPageTool) Name() string {
	return "browser_get_page"
}

func (t GetPageTool) Description() string {
	return `Capture the current page content as a snapshot for inspection.

## Parameters
- format: "markdown" (default) converts the page HTML to markdown; "html" returns the raw HTML
- max_length: Maximum content length before truncation (default: 20000)

## Behavior
- Returns the current URL, the page title and the page content
- Markdown conversion strips scripts and styling, keeping readable text and links`
}

func (t GetPageTool) ValidateInput(_ tools.State, parameters string) error {
	var input GetPageInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	if input.Format != "" && input.Format != "markdown" && input.Format != "html" {
		return fmt.Errorf("invalid format: %s. Valid formats: markdown, html", input.Format)
	}

	if input.MaxLength < 0 {
		return fmt.Errorf("max_length must be non-negative")
	}

	return nil
}

func (t GetPageTool) Execute(ctx context.Context, state tools.State, parameters string) tools.ToolResult {
	var input GetPageInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return GetPageResult{Success: false, Error: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if input.Format == "" {
		input.Format = "markdown"
	}
	if input.MaxLength == 0 {
		input.MaxLength = defaultMaxPageLength
	}

	manager := GetManagerFromState(state)
	if err := manager.EnsureActive(ctx); err != nil {
		return GetPageResult{Success: false, Error: fmt.Sprintf("failed to start browser: %v", err)}
	}

	browserCtx := manager.GetContext()
	if browserCtx == nil {
		return GetPageResult{Success: false, Error: "browser context not available"}
	}

	timeoutCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var currentURL, title, html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Location(&currentURL),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		logger.G(ctx).WithError(err).Info("failed to capture page")
		return GetPageResult{Success: false, Error: fmt.Sprintf("failed to capture page: %v", err)}
	}

	content := html
	if input.Format == "markdown" {
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(html)
		if err != nil {
			return GetPageResult{Success: false, Error: fmt.Sprintf("failed to convert page to markdown: %v", err)}
		}
		content = markdown
	}

	truncated := false
	if len(content) > input.MaxLength {
		content = content[:input.MaxLength]
		truncated = true
	}

	return GetPageResult{
		Success:   true,
		URL:       currentURL,
		Title:     title,
		Content:   content,
		Truncated: truncated,
	}
}

func (t GetPageTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input GetPageInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("browser.get_page.format", input.Format),
		attribute.Int("browser.get_page.max_length", input.MaxLength),
	}, nil
}
