package api

import "errors"

var (
	errNilMetricsHandler  = errors.New("nil metrics handler")
	errNilStatusProvider  = errors.New("nil status provider")
	errEmptyListenAddress = errors.New("empty listen address")
)
