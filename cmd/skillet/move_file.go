package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var moveFileCmd = &cobra.Command{
	Use:   "move-file <source> <destination>",
	Short: "Move a file to a new location",
	Long: `Move a file to a new location, creating missing destination folders.
The source must be a regular file and the destination must not exist.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.MoveFileInput{
			Source:      args[0],
			Destination: args[1],
		})

		result := tools.RunTool(ctx, state, "move_file", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to move file")
			os.Exit(1)
		}

		presenter.Success(result.GetResult())
	},
}
