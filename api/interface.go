package api

import "github.com/xray-tools/blob-stats-exporter/metrics"

// StatusProvider supplies the per-server details reported on /health
type StatusProvider interface {
	View() []metrics.ServerView
	IsInterfaceNil() bool
}
