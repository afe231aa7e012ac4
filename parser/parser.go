package parser

import (
	"fmt"
	"math"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"

	"github.com/xray-tools/blob-stats-exporter/common"
)

var log = logger.GetOrCreate("parser")

const (
	usersPath     = "users"
	timestampPath = "timestamp"
	uplinkField   = "up"
	downlinkField = "down"
)

// Parse decodes the raw contents of a stats blob into a SnapshotBatch.
// Expected shape: {"users": {"<email>": {"up": N, "down": N}, ...}, "timestamp": N}
// Individual malformed user entries are logged and skipped; the whole snapshot
// is rejected only when the overall structure is unusable. A structurally valid
// snapshot with zero usable entries yields an empty batch, not an error.
func Parse(serverID string, data []byte) (common.SnapshotBatch, error) {
	if !gjson.ValidBytes(data) {
		return common.SnapshotBatch{}, fmt.Errorf("%w: not valid JSON", ErrMalformedSnapshot)
	}

	users := gjson.GetBytes(data, usersPath)
	if !users.Exists() || !users.IsObject() {
		return common.SnapshotBatch{}, fmt.Errorf("%w: missing or non-object '%s' field", ErrMalformedSnapshot, usersPath)
	}

	batch := common.SnapshotBatch{
		ServerID: serverID,
		Records:  make([]common.TrafficRecord, 0),
	}

	ts := gjson.GetBytes(data, timestampPath)
	if ts.Type == gjson.Number {
		batch.Timestamp = ts.Int()
	}

	users.ForEach(func(key gjson.Result, value gjson.Result) bool {
		record, err := parseRecord(key.String(), value)
		if err != nil {
			log.Warn("skipping malformed user entry", "server", serverID, "user", key.String(), "error", err)
			return true
		}

		batch.Records = append(batch.Records, record)
		return true
	})

	return batch, nil
}

func parseRecord(user string, value gjson.Result) (common.TrafficRecord, error) {
	if len(user) == 0 {
		return common.TrafficRecord{}, errEmptyUser
	}
	if !value.IsObject() {
		return common.TrafficRecord{}, errNotAnObject
	}

	uplink, err := parseCounter(value.Get(uplinkField))
	if err != nil {
		return common.TrafficRecord{}, fmt.Errorf("%w for field '%s'", err, uplinkField)
	}

	downlink, err := parseCounter(value.Get(downlinkField))
	if err != nil {
		return common.TrafficRecord{}, fmt.Errorf("%w for field '%s'", err, downlinkField)
	}

	return common.TrafficRecord{
		User:          user,
		UplinkBytes:   uplink,
		DownlinkBytes: downlink,
	}, nil
}

func parseCounter(value gjson.Result) (uint64, error) {
	if !value.Exists() {
		return 0, errMissingCounter
	}
	if value.Type != gjson.Number {
		return 0, errNonNumericCounter
	}
	if value.Num < 0 || value.Num != math.Trunc(value.Num) {
		return 0, errInvalidCounter
	}

	return value.Uint(), nil
}
