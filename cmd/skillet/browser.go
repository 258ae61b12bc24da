package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
	"github.com/skillet-dev/skillet/pkg/tools/browser"
)

var browserCmd = &cobra.Command{
	Use:   "browser",
	Short: "Drive a headless browser: navigate, click, type, screenshot",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// runBrowserTool marshals the input, runs the named tool and prints the
// result, exiting non-zero on failure. All browser subcommands share it.
func runBrowserTool(cmd *cobra.Command, name string, input any) {
	ctx := cmd.Context()

	state, cleanup := newState(ctx)
	defer cleanup()

	params, err := json.Marshal(input)
	if err != nil {
		presenter.Error(err, "failed to encode parameters")
		os.Exit(1)
	}

	result := tools.RunTool(ctx, state, name, string(params))
	if result.IsError() {
		presenter.Error(errors.New(result.GetError()), "browser command failed")
		os.Exit(1)
	}

	fmt.Println(result.GetResult())
}

var browserNavigateCmd = &cobra.Command{
	Use:   "navigate <url>",
	Short: "Navigate the browser to a URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		timeout, _ := cmd.Flags().GetInt("timeout")
		runBrowserTool(cmd, "browser_navigate", browser.NavigateInput{URL: args[0], Timeout: timeout})
	},
}

var browserClickCmd = &cobra.Command{
	Use:   "click <selector>",
	Short: "Click the element matching a CSS selector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		timeout, _ := cmd.Flags().GetInt("timeout")
		runBrowserTool(cmd, "browser_click", browser.ClickInput{Selector: args[0], Timeout: timeout})
	},
}

var browserTypeCmd = &cobra.Command{
	Use:   "type <selector> <text>",
	Short: "Type text into the element matching a CSS selector",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		clear, _ := cmd.Flags().GetBool("clear")
		timeout, _ := cmd.Flags().GetInt("timeout")
		runBrowserTool(cmd, "browser_type", browser.TypeInput{
			Selector: args[0],
			Text:     args[1],
			Clear:    clear,
			Timeout:  timeout,
		})
	},
}

var browserScreenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a screenshot of the current page",
	Run: func(cmd *cobra.Command, _ []string) {
		fullPage, _ := cmd.Flags().GetBool("full-page")
		format, _ := cmd.Flags().GetString("format")
		runBrowserTool(cmd, "browser_screenshot", browser.ScreenshotInput{FullPage: fullPage, Format: format})
	},
}

var browserWaitForCmd = &cobra.Command{
	Use:   "wait-for <condition>",
	Short: "Wait for a page condition (page_load, element_visible, element_hidden)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selector, _ := cmd.Flags().GetString("selector")
		timeout, _ := cmd.Flags().GetInt("timeout")
		runBrowserTool(cmd, "browser_wait_for", browser.WaitForInput{
			Condition: args[0],
			Selector:  selector,
			Timeout:   timeout,
		})
	},
}

var browserGetPageCmd = &cobra.Command{
	Use:   "get-page",
	Short: "Print the current page content as markdown or HTML",
	Run: func(cmd *cobra.Command, _ []string) {
		format, _ := cmd.Flags().GetString("format")
		maxLength, _ := cmd.Flags().GetInt("max-length")
		runBrowserTool(cmd, "browser_get_page", browser.GetPageInput{Format: format, MaxLength: maxLength})
	},
}

func init() {
	browserNavigateCmd.Flags().Int("timeout", 30000, "Navigation timeout in milliseconds")
	browserClickCmd.Flags().Int("timeout", 10000, "Timeout to wait for the element in milliseconds")
	browserTypeCmd.Flags().Bool("clear", true, "Clear the field before typing")
	browserTypeCmd.Flags().Int("timeout", 10000, "Timeout to wait for the element in milliseconds")
	browserScreenshotCmd.Flags().Bool("full-page", false, "Capture the full page instead of the viewport")
	browserScreenshotCmd.Flags().String("format", "png", "Image format (png, jpeg)")
	browserWaitForCmd.Flags().String("selector", "", "CSS selector for element conditions")
	browserWaitForCmd.Flags().Int("timeout", 30000, "Maximum time to wait in milliseconds")
	browserGetPageCmd.Flags().String("format", "markdown", "Output format (markdown, html)")
	browserGetPageCmd.Flags().Int("max-length", 20000, "Maximum content length before truncation")

	browserCmd.AddCommand(
		withTracing(browserNavigateCmd),
		withTracing(browserClickCmd),
		withTracing(browserTypeCmd),
		withTracing(browserScreenshotCmd),
		withTracing(browserWaitForCmd),
		withTracing(browserGetPageCmd),
	)
}
