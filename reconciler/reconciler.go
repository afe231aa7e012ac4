package reconciler

import (
	"context"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/xray-tools/blob-stats-exporter/config"
	"github.com/xray-tools/blob-stats-exporter/metrics"
	"github.com/xray-tools/blob-stats-exporter/parser"
)

var log = logger.GetOrCreate("reconciler")

const perServerTimeout = 30 * time.Second

// reconciler drives one List -> select -> Fetch -> Parse -> apply pass per
// configured server and cycle. Servers are processed independently: a failure
// on one never touches the published values of another.
type reconciler struct {
	servers     []config.ServerConfig
	store       SnapshotStore
	state       *metrics.State
	lastApplied map[string]string
}

// NewReconciler creates a new reconciler instance
func NewReconciler(servers []config.ServerConfig, store SnapshotStore, state *metrics.State) (*reconciler, error) {
	if check.IfNil(store) {
		return nil, errNilStore
	}
	if state == nil {
		return nil, errNilState
	}
	if len(servers) == 0 {
		return nil, errNoServers
	}

	return &reconciler{
		servers:     servers,
		store:       store,
		state:       state,
		lastApplied: make(map[string]string, len(servers)),
	}, nil
}

// Process runs one full reconcile cycle over all configured servers. It never
// returns an error: per-server failures are logged and surface only through
// the success gauge.
func (r *reconciler) Process(ctx context.Context) {
	log.Debug("waking up to reconcile servers", "count", len(r.servers))

	for _, srv := range r.servers {
		serverCtx, cancel := context.WithTimeout(ctx, perServerTimeout)
		r.processServer(serverCtx, srv.ID)
		cancel()
	}
}

func (r *reconciler) processServer(ctx context.Context, serverID string) {
	objects, err := r.store.List(ctx, serverID)
	if err != nil {
		log.Warn("failed to list snapshots", "server", serverID, "error", err)
		r.state.MarkFailure(serverID)
		return
	}

	selected, found := SelectLatest(objects)
	if !found {
		log.Debug("no snapshots found", "server", serverID)
		r.state.MarkEmptyListing(serverID)
		return
	}

	if r.lastApplied[serverID] == selected.Name {
		log.Trace("snapshot unchanged, skipping", "server", serverID, "blob", selected.Name)
		r.state.MarkSuccess(serverID)
		return
	}

	data, err := r.store.Fetch(ctx, selected.Name)
	if err != nil {
		log.Warn("failed to fetch snapshot", "server", serverID, "blob", selected.Name, "error", err)
		r.state.MarkFailure(serverID)
		return
	}

	batch, err := parser.Parse(serverID, data)
	if err != nil {
		log.Warn("failed to parse snapshot", "server", serverID, "blob", selected.Name, "error", err)
		r.state.MarkFailure(serverID)
		return
	}

	r.state.ApplySnapshot(serverID, batch, selected.Name, snapshotTimestamp(selected, batch.Timestamp))
	r.lastApplied[serverID] = selected.Name

	log.Debug("applied snapshot", "server", serverID, "blob", selected.Name, "users", len(batch.Records))
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *reconciler) IsInterfaceNil() bool {
	return r == nil
}
