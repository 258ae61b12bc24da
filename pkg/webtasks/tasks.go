package webtasks

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/tools/browser"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// Result reports the outcome of one flow: the final page URL and title plus
// the snapshot taken at the end.
type Result struct {
	URL            string `json:"url"`
	Title          string `json:"title"`
	ScreenshotPath string `json:"screenshotPath"`
}

// runStep executes one browser tool with the given input, turning a tool
// error into a Go error so flows stay linear.
func runStep(ctx context.Context, state tooltypes.State, tool tooltypes.Tool, input any) (tooltypes.ToolResult, error) {
	params, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode step input")
	}

	result := tool.Execute(ctx, state, string(params))
	if result.IsError() {
		return nil, errors.Errorf("%s failed: %s", tool.Name(), result.GetError())
	}
	return result, nil
}

// finish waits for the page, captures a snapshot and returns the flow result.
func finish(ctx context.Context, state tooltypes.State) (*Result, error) {
	if _, err := runStep(ctx, state, browser.WaitForTool{}, browser.WaitForInput{Condition: "page_load"}); err != nil {
		return nil, err
	}

	shot, err := runStep(ctx, state, browser.ScreenshotTool{}, browser.ScreenshotInput{})
	if err != nil {
		return nil, err
	}

	page, err := runStep(ctx, state, browser.GetPageTool{}, browser.GetPageInput{MaxLength: 2000})
	if err != nil {
		return nil, err
	}
	pageResult := page.(browser.GetPageResult)

	return &Result{
		URL:            pageResult.URL,
		Title:          pageResult.Title,
		ScreenshotPath: shot.GetResult(),
	}, nil
}

// Signup performs the forum sign-up flow: open the sign-up page, fill the
// registration form and submit it.
func Signup(ctx context.Context, state tooltypes.State, params SignupParams) (*Result, error) {
	if params.URL == "" {
		return nil, errors.New("signup.url is required in the task profile")
	}
	if params.Username == "" || params.Password == "" {
		return nil, errors.New("signup.username and signup.password are required in the task profile")
	}

	logger.G(ctx).WithField("url", params.URL).Info("starting forum sign-up")
	sel := params.Selectors

	if _, err := runStep(ctx, state, browser.NavigateTool{}, browser.NavigateInput{URL: params.URL}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["username"], Text: params.Username}); err != nil {
		return nil, err
	}
	if params.Email != "" {
		if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["email"], Text: params.Email}); err != nil {
			return nil, err
		}
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["password"], Text: params.Password}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["confirm"], Text: params.Password}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.ClickTool{}, browser.ClickInput{Selector: sel["submit"]}); err != nil {
		return nil, err
	}

	return finish(ctx, state)
}

// WikiCreate performs the wiki page creation flow: open the editor, fill in
// title and content and submit.
func WikiCreate(ctx context.Context, state tooltypes.State, params WikiParams) (*Result, error) {
	if params.URL == "" {
		return nil, errors.New("wiki.url is required in the task profile")
	}
	if params.Title == "" {
		return nil, errors.New("wiki.title is required in the task profile")
	}

	logger.G(ctx).WithField("url", params.URL).WithField("title", params.Title).Info("starting wiki page creation")
	sel := params.Selectors

	if _, err := runStep(ctx, state, browser.NavigateTool{}, browser.NavigateInput{URL: params.URL}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["title"], Text: params.Title}); err != nil {
		return nil, err
	}
	if params.Content != "" {
		if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["content"], Text: params.Content}); err != nil {
			return nil, err
		}
	}
	if _, err := runStep(ctx, state, browser.ClickTool{}, browser.ClickInput{Selector: sel["submit"]}); err != nil {
		return nil, err
	}

	return finish(ctx, state)
}

// AdminLogin performs the admin login flow.
func AdminLogin(ctx context.Context, state tooltypes.State, params AdminParams) (*Result, error) {
	if params.URL == "" {
		return nil, errors.New("admin.url is required in the task profile")
	}
	if params.Username == "" || params.Password == "" {
		return nil, errors.New("admin.username and admin.password are required in the task profile")
	}

	logger.G(ctx).WithField("url", params.URL).Info("starting admin login")
	sel := params.Selectors

	if _, err := runStep(ctx, state, browser.NavigateTool{}, browser.NavigateInput{URL: params.URL}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["username"], Text: params.Username}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["password"], Text: params.Password}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.ClickTool{}, browser.ClickInput{Selector: sel["submit"]}); err != nil {
		return nil, err
	}

	return finish(ctx, state)
}

// ShoppingSearch performs the shopping search flow: open the shop, type the
// query into the search box and submit it.
func ShoppingSearch(ctx context.Context, state tooltypes.State, params ShoppingParams) (*Result, error) {
	if params.URL == "" {
		return nil, errors.New("shopping.url is required in the task profile")
	}
	if params.Query == "" {
		return nil, errors.New("shopping.query is required in the task profile")
	}

	logger.G(ctx).WithField("url", params.URL).WithField("query", params.Query).Info("starting shopping search")
	sel := params.Selectors

	if _, err := runStep(ctx, state, browser.NavigateTool{}, browser.NavigateInput{URL: params.URL}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.TypeTool{}, browser.TypeInput{Selector: sel["search"], Text: params.Query}); err != nil {
		return nil, err
	}
	if _, err := runStep(ctx, state, browser.ClickTool{}, browser.ClickInput{Selector: sel["submit"]}); err != nil {
		return nil, err
	}

	return finish(ctx, state)
}
