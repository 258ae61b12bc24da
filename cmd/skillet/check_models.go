package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var checkModelsCmd = &cobra.Command{
	Use:   "check-models",
	Short: "Check which models an OpenAI-compatible API endpoint serves",
	Long: `Query an OpenAI-compatible API endpoint for its available models and print
the sorted model IDs. The endpoint and key come from configuration
(api.base_url / api.key) or OPENAI_API_BASE / OPENAI_API_KEY.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		baseURL, _ := cmd.Flags().GetString("base-url")

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.CheckModelsInput{BaseURL: baseURL})

		result := tools.RunTool(ctx, state, "check_models", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to check models")
			os.Exit(1)
		}

		fmt.Println(result.GetResult())
	},
}

func init() {
	checkModelsCmd.Flags().String("base-url", "", "Override the configured API base URL")
}
