package protocol

import (
	"context"
)

// Connector is a bound service the check command can probe
type Connector interface {
	Check(ctx context.Context) error
	Type() string
}
