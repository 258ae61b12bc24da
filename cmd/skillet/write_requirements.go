package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var writeRequirementsCmd = &cobra.Command{
	Use:   "write-requirements <path> <package>...",
	Short: "Write a dependency manifest with one package entry per line",
	Long: `Write a dependency manifest file such as requirements.txt. Each package
argument is a bare name ("requests") or a pinned version ("requests==2.31.0").
All entries are validated before anything is written.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		state, cleanup := newState(ctx)
		defer cleanup()

		params, _ := json.Marshal(tools.WriteRequirementsInput{
			Path:     args[0],
			Packages: args[1:],
		})

		result := tools.RunTool(ctx, state, "write_requirements", string(params))
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "failed to write requirements")
			os.Exit(1)
		}

		presenter.Success(result.GetResult())
	},
}
