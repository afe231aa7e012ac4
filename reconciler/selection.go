package reconciler

import (
	"path"
	"strconv"
	"strings"

	"github.com/xray-tools/blob-stats-exporter/common"
)

const snapshotExtension = ".json"

// SelectLatest picks the snapshot with the maximum LastModified timestamp.
// Ties are broken by the lexicographically greatest name, so the choice is
// reproducible no matter the listing order.
func SelectLatest(objects []common.SnapshotObject) (common.SnapshotObject, bool) {
	if len(objects) == 0 {
		return common.SnapshotObject{}, false
	}

	selected := objects[0]
	for _, candidate := range objects[1:] {
		if candidate.LastModified.After(selected.LastModified) {
			selected = candidate
			continue
		}
		if candidate.LastModified.Equal(selected.LastModified) && candidate.Name > selected.Name {
			selected = candidate
		}
	}

	return selected, true
}

// snapshotTimestamp resolves the timestamp to publish for an applied snapshot:
// the unix timestamp encoded in the blob name ("<server_id>/<unix_ts>.json")
// when present, then the timestamp carried in the payload, then the store's
// LastModified as a last resort.
func snapshotTimestamp(object common.SnapshotObject, payloadTimestamp int64) int64 {
	filename := path.Base(object.Name)
	tsString := strings.TrimSuffix(filename, snapshotExtension)
	ts, err := strconv.ParseInt(tsString, 10, 64)
	if err == nil && ts >= 0 {
		return ts
	}

	if payloadTimestamp > 0 {
		return payloadTimestamp
	}

	return object.LastModified.Unix()
}
