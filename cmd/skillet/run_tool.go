package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var runToolCmd = &cobra.Command{
	Use:   "run-tool <name>",
	Short: "Run a registered tool with raw JSON parameters",
	Long: `Run any registered tool by name with a raw JSON parameter object, the same
way an agent would invoke it. Use "run-tool list" to see the available tools.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if args[0] == "list" {
			for _, tool := range tools.GetMainTools() {
				fmt.Println(tool.Name())
			}
			return
		}

		if err := tools.ValidateTools([]string{args[0]}); err != nil {
			presenter.Error(err, "unknown tool")
			fmt.Fprintf(os.Stderr, "available tools: %s\n", strings.Join(toolNames(), ", "))
			os.Exit(1)
		}

		params, _ := cmd.Flags().GetString("params")

		state, cleanup := newState(ctx)
		defer cleanup()

		result := tools.RunTool(ctx, state, args[0], params)
		if result.IsError() {
			presenter.Error(errors.New(result.GetError()), "tool failed")
			os.Exit(1)
		}

		fmt.Println(result.GetResult())
	},
}

func toolNames() []string {
	mainTools := tools.GetMainTools()
	names := make([]string, 0, len(mainTools))
	for _, tool := range mainTools {
		names = append(names, tool.Name())
	}
	return names
}

func init() {
	runToolCmd.Flags().String("params", "{}", "Tool parameters as a JSON object")
}
