package base

import (
	"context"
	"time"
)

const (
	DefaultRetryCount = 3
	DefaultRetrySleep = time.Second
)

// Driver carries the retry policy shared by the preflight probes
type Driver struct {
	RetryCount int
	RetrySleep time.Duration
}

func NewBase(retryCount int) *Driver {
	if retryCount <= 0 {
		retryCount = DefaultRetryCount
	}

	return &Driver{
		RetryCount: retryCount,
		RetrySleep: DefaultRetrySleep,
	}
}

// Retry runs f under the driver's retry policy
func (d *Driver) Retry(ctx context.Context, f func() error) error {
	return RetryOnBackoff(ctx, d.RetryCount, d.RetrySleep, f)
}
