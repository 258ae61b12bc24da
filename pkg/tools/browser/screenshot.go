package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/types/tools"
)

type ScreenshotTool struct{}

type ScreenshotInput struct {
	FullPage bool   `json:"full_page" jsonschema:"default=false,description=Capture full page or just viewport"`
	Format   string `json:"format" jsonschema:"default=png,enum=png,enum=jpeg"`
}

type ScreenshotResult struct {
	Success    bool   `json:"success"`
	OutputPath string `json:"output_path,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (r ScreenshotResult) AssistantFacing() string {
	if !r.Success {
		return tools.StringifyToolResult("", r.Error)
	}
	result := fmt.Sprintf("Screenshot saved to %s (%dx%d)", r.OutputPath, r.Width, r.Height)
	return tools.StringifyToolResult(result, "")
}

func (r ScreenshotResult) IsError() bool {
	return !r.Success
}

func (r ScreenshotResult) GetError() string {
	return r.Error
}

func (r ScreenshotResult) GetResult() string {
	return r.OutputPath
}

func (t ScreenshotTool) GenerateSchema() *jsonschema.Schema {
	return generateSchema[ScreenshotInput]()
}

func (t ScreenshotTool) Name() string {
	return "browser_screenshot"
}

func (t ScreenshotTool) Description() string {
	return `Capture a screenshot of the current web page.

## Parameters
- full_page: Whether to capture the entire page or just the viewport (default: false)
- format: Image format - "png" or "jpeg" (default: "png")

## Behavior
- Captures the current page state immediately and saves it under ~/.skillet/screenshots with a unique filename
- Returns the file path and viewport dimensions

## Notes
- Use browser_wait_for with "page_load" before taking screenshots of freshly navigated pages
- JPEG is recommended for large full-page captures`
}

func (t ScreenshotTool) ValidateInput(_ tools.State, parameters string) error {
	var input ScreenshotInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}

	if input.Format != "" && input.Format != "png" && input.Format != "jpeg" {
		return errors.Errorf("invalid format: %s. Valid formats: png, jpeg", input.Format)
	}

	return nil
}

func (t ScreenshotTool) Execute(ctx context.Context, state tools.State, parameters string) tools.ToolResult {
	var input ScreenshotInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return ScreenshotResult{Success: false, Error: fmt.Sprintf("failed to parse input: %v", err)}
	}

	if input.Format == "" {
		input.Format = "png"
	}

	manager := GetManagerFromState(state)
	if err := manager.EnsureActive(ctx); err != nil {
		return ScreenshotResult{Success: false, Error: fmt.Sprintf("failed to start browser: %v", err)}
	}

	browserCtx := manager.GetContext()
	if browserCtx == nil {
		return ScreenshotResult{Success: false, Error: "browser context not available"}
	}

	screenshotPath, err := GenerateScreenshotPath(input.Format)
	if err != nil {
		return ScreenshotResult{Success: false, Error: fmt.Sprintf("failed to generate screenshot path: %v", err)}
	}

	var width, height int64
	err = chromedp.Run(browserCtx,
		chromedp.Evaluate(`window.innerWidth`, &width),
		chromedp.Evaluate(`window.innerHeight`, &height),
	)
	if err != nil {
		logger.G(ctx).WithError(err).Info("failed to get page dimensions")
		width, height = 0, 0
	}

	var screenshotBytes []byte
	var screenshotAction chromedp.Action
	if input.FullPage {
		screenshotAction = chromedp.FullScreenshot(&screenshotBytes, 90)
	} else {
		screenshotAction = chromedp.CaptureScreenshot(&screenshotBytes)
	}

	if err := chromedp.Run(browserCtx, screenshotAction); err != nil {
		logger.G(ctx).WithField("path", screenshotPath).WithError(err).Info("screenshot failed")
		return ScreenshotResult{Success: false, Error: fmt.Sprintf("screenshot failed: %v", err)}
	}

	if err := os.WriteFile(screenshotPath, screenshotBytes, 0o644); err != nil {
		return ScreenshotResult{Success: false, Error: fmt.Sprintf("failed to save screenshot: %v", err)}
	}

	logger.G(ctx).WithField("path", screenshotPath).Info("screenshot saved")

	return ScreenshotResult{
		Success:    true,
		OutputPath: screenshotPath,
		Width:      int(width),
		Height:     int(height),
	}
}

func (t ScreenshotTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ScreenshotInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.Bool("browser.screenshot.full_page", input.FullPage),
		attribute.String("browser.screenshot.format", input.Format),
	}, nil
}
