package protocol

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/datazip-inc/maxwell-launcher/drivers/base"
	"github.com/datazip-inc/maxwell-launcher/drivers/kafka"
	"github.com/datazip-inc/maxwell-launcher/drivers/mysql"
	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/pkg/maxwell"
	"github.com/datazip-inc/maxwell-launcher/pkg/vcap"
	"github.com/datazip-inc/maxwell-launcher/types"
	"github.com/datazip-inc/maxwell-launcher/utils"
)

var checkTimeout time.Duration

// checkCmd probes the bound services and the local runtime without launching Maxwell
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the bound MySQL and Kafka services and the Maxwell runtime",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		timeout := cfg.CheckTimeout
		if cmd.Flags().Changed("timeout") {
			timeout = checkTimeout
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		err := func() error {
			launchConfig, err := vcap.Discover(cfg.BindingsEnv, cfg.DefaultTopic)
			if err != nil {
				return err
			}

			driver := base.NewBase(cfg.CheckRetries)
			connectors := []Connector{
				mysql.New(driver, launchConfig.MySQL),
				kafka.New(driver, launchConfig.Kafka),
			}

			// local runtime first, then the java binary it depends on
			runtime := func() error {
				return utils.ErrExecSequential(
					utils.ErrExecFormat("maxwell: %w", func() error {
						return maxwell.CheckBinary(cfg.Binary)
					}),
					utils.ErrExecFormat("java: %w", func() error {
						return utils.CheckIfFilesExists(filepath.Join(cfg.JavaHome, "bin", "java"))
					}),
				)
			}

			checks := []func() error{runtime}
			for _, connector := range connectors {
				connector := connector
				checks = append(checks, utils.ErrExecFormat(connector.Type()+": %w", func() error {
					return connector.Check(ctx)
				}))
			}

			return utils.ErrExecAll(checks...)
		}()

		message := types.Message{
			Type: types.ConnectionStatusMessage,
			ConnectionStatus: &types.StatusRow{
				Status: types.ConnectionSucceed,
			},
		}
		if err != nil {
			message.ConnectionStatus.Message = err.Error()
			message.ConnectionStatus.Status = types.ConnectionFailed
		}
		logger.Info(message)

		return err
	},
}

func init() {
	checkCmd.Flags().DurationVarP(&checkTimeout, "timeout", "", 30*time.Second, "(Optional) Overall deadline for the checks")
}
