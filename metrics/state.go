package metrics

import (
	"sort"
	"sync"

	"github.com/xray-tools/blob-stats-exporter/common"
)

// serverMetrics holds the last published values for a single monitored server
type serverMetrics struct {
	users             map[string]common.TrafficRecord
	lastUpdateSuccess bool
	everSucceeded     bool
	lastBlobName      string
	lastBlobTimestamp int64
}

// State is the shared registry of exported values. It is written by the
// reconciler and read by the Prometheus collector, so every access goes
// through the RWMutex and each server's update appears atomic to readers.
type State struct {
	mut     sync.RWMutex
	servers map[string]*serverMetrics
}

// NewState creates the state holder with one empty entry per configured
// server, so the success gauge reports 0 for every server from the very first
// scrape, before any reconcile cycle ran.
func NewState(serverIDs []string) *State {
	servers := make(map[string]*serverMetrics, len(serverIDs))
	for _, id := range serverIDs {
		servers[id] = newServerMetrics()
	}

	return &State{
		servers: servers,
	}
}

func newServerMetrics() *serverMetrics {
	return &serverMetrics{
		users: make(map[string]common.TrafficRecord),
	}
}

// caller must hold the write lock
func (state *State) get(serverID string) *serverMetrics {
	srv, found := state.servers[serverID]
	if !found {
		srv = newServerMetrics()
		state.servers[serverID] = srv
	}

	return srv
}

// ApplySnapshot replaces the server's published per-user counters with the
// batch contents ("latest wins") and marks the cycle successful. An empty
// batch leaves the user counters untouched but still refreshes the success
// flag and the blob timestamp.
func (state *State) ApplySnapshot(serverID string, batch common.SnapshotBatch, blobName string, blobTimestamp int64) {
	state.mut.Lock()
	defer state.mut.Unlock()

	srv := state.get(serverID)
	if len(batch.Records) > 0 {
		users := make(map[string]common.TrafficRecord, len(batch.Records))
		for _, record := range batch.Records {
			users[record.User] = record
		}
		srv.users = users
	}

	srv.lastUpdateSuccess = true
	srv.everSucceeded = true
	srv.lastBlobName = blobName
	srv.lastBlobTimestamp = blobTimestamp
}

// MarkSuccess records a successful cycle that published nothing new, raising
// the success flag while keeping the counters and the blob info as they are
func (state *State) MarkSuccess(serverID string) {
	state.mut.Lock()
	defer state.mut.Unlock()

	srv := state.get(serverID)
	srv.lastUpdateSuccess = true
	srv.everSucceeded = true
}

// MarkFailure records a failed cycle for the server, keeping the previously
// published counters intact
func (state *State) MarkFailure(serverID string) {
	state.mut.Lock()
	defer state.mut.Unlock()

	srv := state.get(serverID)
	srv.lastUpdateSuccess = false
}

// MarkEmptyListing records a cycle that found no snapshots for the server.
// The flag is lowered only when the server never had a successful cycle, so a
// transient empty listing does not flap an otherwise healthy series.
func (state *State) MarkEmptyListing(serverID string) {
	state.mut.Lock()
	defer state.mut.Unlock()

	srv := state.get(serverID)
	if !srv.everSucceeded {
		srv.lastUpdateSuccess = false
	}
}

// ServerView is a read-only copy of one server's published values
type ServerView struct {
	ServerID          string
	Users             []common.TrafficRecord
	LastUpdateSuccess bool
	LastBlobName      string
	LastBlobTimestamp int64
}

// View returns a consistent copy of all published values, sorted by server and
// user, so a scrape can be encoded without holding the lock and two views of
// the same state always compare equal
func (state *State) View() []ServerView {
	state.mut.RLock()
	defer state.mut.RUnlock()

	views := make([]ServerView, 0, len(state.servers))
	for id, srv := range state.servers {
		users := make([]common.TrafficRecord, 0, len(srv.users))
		for _, record := range srv.users {
			users = append(users, record)
		}
		sort.Slice(users, func(i, j int) bool {
			return users[i].User < users[j].User
		})

		views = append(views, ServerView{
			ServerID:          id,
			Users:             users,
			LastUpdateSuccess: srv.lastUpdateSuccess,
			LastBlobName:      srv.lastBlobName,
			LastBlobTimestamp: srv.lastBlobTimestamp,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].ServerID < views[j].ServerID
	})

	return views
}

// IsInterfaceNil returns true if the value under the interface is nil
func (state *State) IsInterfaceNil() bool {
	return state == nil
}
