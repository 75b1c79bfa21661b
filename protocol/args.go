package protocol

import (
	"github.com/spf13/cobra"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/pkg/maxwell"
	"github.com/datazip-inc/maxwell-launcher/pkg/vcap"
	"github.com/datazip-inc/maxwell-launcher/types"
)

var showSecrets bool

// argsCmd prints the arguments Maxwell would be launched with
var argsCmd = &cobra.Command{
	Use:   "args [-- maxwell args...]",
	Short: "Print the Maxwell arguments resolved from the bound services",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := passthroughArgs(cmd, args)
		if err != nil {
			return err
		}

		launchConfig, err := vcap.Discover(cfg.BindingsEnv, cfg.DefaultTopic)
		if err != nil {
			return err
		}

		launchArgs := maxwell.BuildArgs(launchConfig, extra...)
		if !showSecrets {
			launchArgs = maxwell.Redact(launchArgs)
		}

		logger.Info(types.Message{
			Type:       types.LaunchArgsMessage,
			LaunchArgs: launchArgs,
		})
		return nil
	},
}

func init() {
	argsCmd.Flags().BoolVarP(&showSecrets, "show-secrets", "", false, "(Optional) Print the MySQL password instead of masking it")
}
