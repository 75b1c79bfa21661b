// Package maxwell builds Maxwell's command line and hands the process over to it.
package maxwell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/types"
)

const (
	processName = "maxwell"
	stopTimeout = 30 * time.Second
)

var (
	ErrExecUnsupported = errors.New("process replacement is not supported on this platform")

	stopSignal os.Signal = syscall.SIGTERM
)

// CheckBinary verifies that path names an executable regular file
func CheckBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &types.LaunchError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &types.LaunchError{Path: path, Err: errors.New("is a directory")}
	}
	if !isExecutable(info) {
		return &types.LaunchError{Path: path, Err: errors.New("is not executable")}
	}

	return nil
}

// Exec replaces the current process with binary. It only returns on failure;
// ErrExecUnsupported is wrapped when the platform cannot replace a process image.
func Exec(binary string, args []string) error {
	if err := CheckBinary(binary); err != nil {
		return err
	}

	argv := append([]string{binary}, args...)
	logger.Infof("replacing launcher with %s", binary)
	if err := execProcess(binary, argv, os.Environ()); err != nil {
		return &types.LaunchError{Path: binary, Err: err}
	}

	return nil
}

// Supervise runs binary as a child process, forwarding its output into the logger,
// and returns once it exits. Cancelling ctx asks the child to stop.
func Supervise(ctx context.Context, binary string, args []string) error {
	if err := CheckBinary(binary); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = os.Environ()
	cmd.Cancel = func() error {
		return cmd.Process.Signal(stopSignal)
	}
	cmd.WaitDelay = stopTimeout

	logger.Infof("starting %s as a supervised process", binary)
	wait, err := logger.SetupAndStartProcess(processName, cmd)
	if err != nil {
		return &types.LaunchError{Path: binary, Err: err}
	}

	if err := wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &types.LaunchError{Path: binary, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &types.LaunchError{Path: binary, Err: fmt.Errorf("failed waiting for process: %w", err)}
	}

	logger.Infof("%s exited", binary)
	return nil
}
