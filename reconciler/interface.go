package reconciler

import (
	"context"

	"github.com/xray-tools/blob-stats-exporter/common"
)

// SnapshotStore defines the read-only operations needed from the remote blob store
type SnapshotStore interface {
	// List returns all snapshot objects found under the server's prefix, in no
	// particular order. An empty prefix yields an empty slice, not an error.
	List(ctx context.Context, serverID string) ([]common.SnapshotObject, error)

	// Fetch downloads the raw contents of the named object
	Fetch(ctx context.Context, name string) ([]byte, error)

	IsInterfaceNil() bool
}
