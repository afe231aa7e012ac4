package testsCommon

import (
	"context"

	"github.com/xray-tools/blob-stats-exporter/common"
)

// SnapshotStoreStub -
type SnapshotStoreStub struct {
	ListHandler  func(ctx context.Context, serverID string) ([]common.SnapshotObject, error)
	FetchHandler func(ctx context.Context, name string) ([]byte, error)
}

// List -
func (stub *SnapshotStoreStub) List(ctx context.Context, serverID string) ([]common.SnapshotObject, error) {
	if stub.ListHandler != nil {
		return stub.ListHandler(ctx, serverID)
	}

	return make([]common.SnapshotObject, 0), nil
}

// Fetch -
func (stub *SnapshotStoreStub) Fetch(ctx context.Context, name string) ([]byte, error) {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, name)
	}

	return nil, nil
}

// IsInterfaceNil -
func (stub *SnapshotStoreStub) IsInterfaceNil() bool {
	return stub == nil
}
