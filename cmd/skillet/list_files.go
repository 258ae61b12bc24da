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

var listFilesCmd = &cobra.Command{
	Use:   "list-files <directory>",
	Short: "List all files under a directory recursively",
	Long: `List all files under a directory recursively, printing one path per line
relative to the directory, sorted lexicographically. Hidden files (names
starting with a period) are excluded unless --include-hidden is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if err := scanner.ValidateRoot(args[0]); err != nil {
			presenter.Error(err, "invalid directory")
			os.Exit(1)
		}

		includeHidden, _ := cmd.Flags().GetBool("include-hidden")
		pattern, _ := cmd.Flags().GetString("pattern")

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.ListFilesInput{
			Directory:     args[0],
			IncludeHidden: includeHidden,
			Pattern:       pattern,
		})

		result := tools.RunTool(ctx, state, "list_files", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to list files")
			os.Exit(1)
		}

		fmt.Println(result.GetResult())
	},
}

func init() {
	listFilesCmd.Flags().Bool("include-hidden", false, "Include files whose name starts with a period")
	listFilesCmd.Flags().String("pattern", "", "Glob pattern matched against relative paths (supports **)")
}
