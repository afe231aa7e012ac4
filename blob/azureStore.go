package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/xray-tools/blob-stats-exporter/common"
)

var log = logger.GetOrCreate("blob")

// azureStore is the Azure Blob Storage implementation of the snapshot store
type azureStore struct {
	client    *azblob.Client
	container string
}

// NewAzureStore creates a read-only client for the given storage account using
// the default Azure credential chain (environment variables are tried first)
func NewAzureStore(storageAccount string, container string) (*azureStore, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create the Azure credential chain: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", storageAccount)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create the blob service client: %w", err)
	}

	return &azureStore{
		client:    client,
		container: container,
	}, nil
}

// List returns all snapshot blobs found under the "<serverID>/" prefix, in no
// particular order. A missing container or an empty prefix yields an empty
// slice, not an error.
func (store *azureStore) List(ctx context.Context, serverID string) ([]common.SnapshotObject, error) {
	prefix := serverID + "/"
	pager := store.client.NewListBlobsFlatPager(store.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	objects := make([]common.SnapshotObject, 0)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				log.Debug("container not found while listing", "container", store.container)
				return make([]common.SnapshotObject, 0), nil
			}

			return nil, fmt.Errorf("%w: listing prefix '%s': %v", ErrStoreUnavailable, prefix, err)
		}

		for _, item := range page.Segment.BlobItems {
			if item.Name == nil || item.Properties == nil || item.Properties.LastModified == nil {
				continue
			}

			objects = append(objects, common.SnapshotObject{
				Name:         *item.Name,
				LastModified: *item.Properties.LastModified,
			})
		}
	}

	return objects, nil
}

// Fetch downloads the raw contents of the named blob
func (store *azureStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	resp, err := store.client.DownloadStream(ctx, store.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrObjectGone, name)
		}

		return nil, fmt.Errorf("%w: downloading '%s': %v", ErrStoreUnavailable, name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading '%s': %v", ErrStoreUnavailable, name, err)
	}

	return data, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (store *azureStore) IsInterfaceNil() bool {
	return store == nil
}
