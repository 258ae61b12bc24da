package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/scanner"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var fileStatisticsCmd = &cobra.Command{
	Use:   "file-statistics <directory>",
	Short: "Compute file, folder and size statistics for a directory tree",
	Long: `Walk a directory tree and report the number of files, the number of
folders and the total size of all files in bytes. .DS_Store entries count
towards the total size but not the file count.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if err := scanner.ValidateRoot(args[0]); err != nil {
			presenter.Error(err, "invalid directory")
			os.Exit(1)
		}

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.FileStatisticsInput{Directory: args[0]})

		result := tools.RunTool(ctx, state, "file_statistics", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to compute statistics")
			os.Exit(1)
		}

		fmt.Println(result.GetResult())
	},
}
