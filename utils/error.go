package utils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ErrExecAll runs functions concurrently and aggregates every error
func ErrExecAll(functions ...func() error) error {
	var (
		mu      sync.Mutex
		multErr *multierror.Error
		group   errgroup.Group
	)
	for _, one := range functions {
		one := one
		group.Go(func() error {
			if err := one(); err != nil {
				mu.Lock()
				multErr = multierror.Append(multErr, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	return flatten(multErr)
}

// ErrExecSequential runs functions in order and aggregates every error
func ErrExecSequential(functions ...func() error) error {
	var multErr *multierror.Error
	for _, one := range functions {
		err := one()
		if err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}

	return flatten(multErr)
}

func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}

		return nil
	}
}

// flatten keeps single errors unwrapped and renders several on one line
func flatten(multErr *multierror.Error) error {
	if multErr == nil || len(multErr.Errors) == 0 {
		return nil
	}
	if len(multErr.Errors) == 1 {
		return multErr.Errors[0]
	}
	multErr.ErrorFormat = func(errs []error) string {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		return fmt.Sprintf("%d errors occurred: %s", len(errs), strings.Join(messages, "; "))
	}

	return multErr
}
