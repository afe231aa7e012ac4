package common

import "time"

// SnapshotObject identifies one candidate stats blob found under a server's prefix.
// The listing makes no ordering promises, selection happens in the reconciler.
type SnapshotObject struct {
	Name         string
	LastModified time.Time
}

// TrafficRecord holds the absolute traffic counters parsed for a single user
type TrafficRecord struct {
	User          string
	UplinkBytes   uint64
	DownlinkBytes uint64
}

// TotalBytes returns the combined uplink and downlink counters
func (record TrafficRecord) TotalBytes() uint64 {
	return record.UplinkBytes + record.DownlinkBytes
}

// SnapshotBatch is the parsed content of one stats blob. It lives for a single
// reconcile cycle and is discarded after being applied.
type SnapshotBatch struct {
	ServerID  string
	Timestamp int64
	Records   []TrafficRecord
}
