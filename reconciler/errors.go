package reconciler

import "errors"

var (
	errNilStore  = errors.New("nil snapshot store")
	errNilState  = errors.New("nil metrics state")
	errNoServers = errors.New("no servers to reconcile")
)
