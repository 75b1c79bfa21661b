package protocol

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/pkg/maxwell"
	"github.com/datazip-inc/maxwell-launcher/pkg/settings"
	"github.com/datazip-inc/maxwell-launcher/pkg/vcap"
	"github.com/datazip-inc/maxwell-launcher/types"
)

var (
	logLevel  string
	supervise bool

	cfg *settings.Settings

	commands     = []*cobra.Command{}
	registerOnce sync.Once
)

// RootCmd resolves the bound services and hands the process over to Maxwell
var RootCmd = &cobra.Command{
	Use:   "maxwell-launcher [-- maxwell args...]",
	Short: "Launch Maxwell with credentials from bound MySQL and Kafka services",
	Args:  cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = settings.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		return logger.Init(cfg.LogLevel, cfg.LogFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := passthroughArgs(cmd, args)
		if err != nil {
			return err
		}

		launchConfig, err := vcap.Discover(cfg.BindingsEnv, cfg.DefaultTopic)
		if err != nil {
			return err
		}
		logger.Infof("using mysql service %q and kafka service %q", launchConfig.MySQLService, launchConfig.KafkaService)

		if err := maxwell.SetJavaEnvironment(cfg.JavaHome); err != nil {
			return &types.LaunchError{Path: cfg.Binary, Err: err}
		}

		launchArgs := maxwell.BuildArgs(launchConfig, extra...)
		logger.Debugf("maxwell args: %v", maxwell.Redact(launchArgs))

		if supervise {
			return maxwell.Supervise(cmd.Context(), cfg.Binary, launchArgs)
		}

		err = maxwell.Exec(cfg.Binary, launchArgs)
		if errors.Is(err, maxwell.ErrExecUnsupported) {
			logger.Warnf("%s, falling back to a supervised process", err)
			return maxwell.Supervise(cmd.Context(), cfg.Binary, launchArgs)
		}

		return err
	},
}

// CreateRootCommand registers the subcommands and returns the root command
func CreateRootCommand() *cobra.Command {
	registerOnce.Do(func() {
		RootCmd.AddCommand(commands...)
	})

	return RootCmd
}

// passthroughArgs returns the arguments given after "--"; anything before it is rejected
func passthroughArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash == -1 {
		dash = len(args)
	}
	if dash > 0 {
		return nil, fmt.Errorf("'%s' is an invalid command. Use '%s --help' to display usage guide, and pass Maxwell arguments after '--'", args[0], cmd.Root().Name())
	}

	return append([]string{}, args[dash:]...), nil
}

func init() {
	commands = append(commands, argsCmd, checkCmd)
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "(Optional) Log level: debug, info, warn, error")
	RootCmd.Flags().BoolVarP(&supervise, "supervise", "", false, "(Optional) Run Maxwell as a child process instead of replacing the launcher")
	// Disable Cobra CLI's built-in usage and error handling
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}
