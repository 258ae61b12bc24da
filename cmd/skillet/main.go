package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillet-dev/skillet/pkg/history"
	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/presenter"
	"github.com/skillet-dev/skillet/pkg/tools"
)

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Automation skills for filesystem and browser tasks",
	Long: `Skillet is a CLI of small automation skills: directory scanning,
file management, browser automation flows and model availability checks.
Every skill can also be served to agents over MCP stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning("invalid log level, falling back to info")
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLET")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillet")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json, text)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress progress output (errors are still printed)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// newState builds the execution state shared by the skill commands, wiring
// the invocation recorder unless history is disabled. The returned cleanup
// closes the browser session and the history database.
func newState(ctx context.Context) (*tools.BasicState, func()) {
	var opts []tools.BasicStateOption
	closeStore := func() {}

	if !viper.GetBool("history.disabled") {
		dbPath := viper.GetString("history.db_path")
		if dbPath == "" {
			defaultPath, err := history.DefaultDBPath()
			if err != nil {
				logger.G(ctx).WithError(err).Warn("cannot determine history database path")
			}
			dbPath = defaultPath
		}

		if dbPath != "" {
			store, err := history.Open(ctx, dbPath)
			if err != nil {
				logger.G(ctx).WithError(err).Warn("failed to open history database, invocations will not be recorded")
			} else {
				opts = append(opts, tools.WithRecorder(store))
				closeStore = func() { store.Close() }
			}
		}
	}

	state := tools.NewBasicState(ctx, opts...)
	return state, func() {
		state.Close()
		closeStore()
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := initTracing(ctx)
	if err != nil {
		logger.G(ctx).WithError(err).Warn("failed to initialize tracing")
	}
	defer func() {
		if shutdownTracing != nil {
			_ = shutdownTracing(context.Background())
		}
	}()

	rootCmd.AddCommand(
		withTracing(listFilesCmd),
		withTracing(fileStatisticsCmd),
		withTracing(createFolderCmd),
		withTracing(moveFileCmd),
		withTracing(writeRequirementsCmd),
		withTracing(checkModelsCmd),
		withTracing(runToolCmd),
		browserCmd,
		webTaskCmd,
		historyCmd,
		serveCmd,
		versionCmd,
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "command failed")
		os.Exit(1)
	}
}
