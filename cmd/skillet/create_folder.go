package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var createFolderCmd = &cobra.Command{
	Use:   "create-folder <path>",
	Short: "Create a folder, including missing parent folders",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.CreateFolderInput{Path: args[0]})

		result := tools.RunTool(ctx, state, "create_folder", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to create folder")
			os.Exit(1)
		}

		presenter.Success(result.GetResult())
	},
}
