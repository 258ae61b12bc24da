package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
	"github.com/skillet-dev/skillet/pkg/webtasks"
)

var webTaskCmd = &cobra.Command{
	Use:   "web-task",
	Short: "Run scripted browser flows described by a task profile",
	Long: `Run a scripted browser flow. Each flow reads its parameters (URLs,
credentials, form values, selector overrides) from a YAML task profile,
drives a headless browser through the steps and finishes with a screenshot
and a page snapshot.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// runWebTask loads the profile and executes one flow against a fresh state.
func runWebTask(cmd *cobra.Command, flow func(context.Context, tooltypes.State, *webtasks.Profile) (*webtasks.Result, error)) {
	ctx := cmd.Context()

	profilePath, _ := cmd.Flags().GetString("profile")
	profile, err := webtasks.LoadProfile(profilePath)
	if err != nil {
		presenter.Error(err, "failed to load task profile")
		os.Exit(1)
	}

	state, cleanup := newState(ctx)
	defer cleanup()

	result, err := flow(ctx, state, profile)
	if err != nil {
		cleanup()
		presenter.Error(err, "task failed")
		os.Exit(1)
	}

	presenter.Success("task completed")
	presenter.Info("url: " + result.URL)
	presenter.Info("title: " + result.Title)
	presenter.Info("screenshot: " + result.ScreenshotPath)
}

var webTaskSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Sign up for a forum account",
	Run: func(cmd *cobra.Command, _ []string) {
		runWebTask(cmd, func(ctx context.Context, state tooltypes.State, profile *webtasks.Profile) (*webtasks.Result, error) {
			return webtasks.Signup(ctx, state, profile.Signup)
		})
	},
}

var webTaskWikiCreateCmd = &cobra.Command{
	Use:   "wiki-create",
	Short: "Create a wiki page",
	Run: func(cmd *cobra.Command, _ []string) {
		runWebTask(cmd, func(ctx context.Context, state tooltypes.State, profile *webtasks.Profile) (*webtasks.Result, error) {
			return webtasks.WikiCreate(ctx, state, profile.Wiki)
		})
	},
}

var webTaskAdminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Log in to an admin panel",
	Run: func(cmd *cobra.Command, _ []string) {
		runWebTask(cmd, func(ctx context.Context, state tooltypes.State, profile *webtasks.Profile) (*webtasks.Result, error) {
			return webtasks.AdminLogin(ctx, state, profile.Admin)
		})
	},
}

var webTaskShoppingSearchCmd = &cobra.Command{
	Use:   "shopping-search",
	Short: "Search a shopping site for a product",
	Run: func(cmd *cobra.Command, _ []string) {
		runWebTask(cmd, func(ctx context.Context, state tooltypes.State, profile *webtasks.Profile) (*webtasks.Result, error) {
			return webtasks.ShoppingSearch(ctx, state, profile.Shopping)
		})
	},
}

func init() {
	webTaskCmd.PersistentFlags().String("profile", "task-profile.yaml", "Path to the YAML task profile")

	webTaskCmd.AddCommand(
		withTracing(webTaskSignupCmd),
		withTracing(webTaskWikiCreateCmd),
		withTracing(webTaskAdminLoginCmd),
		withTracing(webTaskShoppingSearchCmd),
	)
}
