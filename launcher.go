package launcher

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/protocol"
	"github.com/datazip-inc/maxwell-launcher/types"
)

// Run executes the launcher command line and exits the process.
// A supervised Maxwell that fails passes its exit status through.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := protocol.CreateRootCommand().ExecuteContext(ctx)
	stop()
	if err == nil {
		os.Exit(0)
	}

	var launchErr *types.LaunchError
	if errors.As(err, &launchErr) && launchErr.ExitCode > 0 {
		logger.Error(err)
		os.Exit(launchErr.ExitCode)
	}

	logger.Fatal(err)
}
