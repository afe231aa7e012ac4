package factory

import "context"

// Reconciler defines the reconcile engine's operations
type Reconciler interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}

// Server defines the exposition web server operations
type Server interface {
	Start()
	Address() string
	Close() error
}
