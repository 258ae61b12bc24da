package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillet-dev/skillet/pkg/history"
	"github.com/skillet-dev/skillet/pkg/presenter"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tool invocations",
	Long: `List recent tool invocations recorded in the local history database,
newest first. Recording happens automatically whenever a skill runs unless
history.disabled is set.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		dbPath := viper.GetString("history.db_path")
		if dbPath == "" {
			defaultPath, err := history.DefaultDBPath()
			if err != nil {
				presenter.Error(err, "cannot determine history database path")
				os.Exit(1)
			}
			dbPath = defaultPath
		}

		store, err := history.Open(ctx, dbPath)
		if err != nil {
			presenter.Error(err, "failed to open history database")
			os.Exit(1)
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		failedOnly, _ := cmd.Flags().GetBool("failed")
		tool, _ := cmd.Flags().GetString("tool")

		entries, err := store.List(ctx, history.ListOptions{
			Limit:      limit,
			FailedOnly: failedOnly,
			Tool:       tool,
		})
		if err != nil {
			presenter.Error(err, "failed to list invocations")
			os.Exit(1)
		}

		if len(entries) == 0 {
			presenter.Info("no invocations recorded")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tTOOL\tSTATUS\tDURATION\tERROR")
		for _, entry := range entries {
			status := "ok"
			if !entry.Success {
				status = "failed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\n",
				entry.CreatedAt.Local().Format(time.DateTime),
				entry.Tool, status, entry.DurationMS, entry.Error)
		}
		w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of invocations to show")
	historyCmd.Flags().Bool("failed", false, "Show only failed invocations")
	historyCmd.Flags().String("tool", "", "Show only invocations of the given tool")
}
