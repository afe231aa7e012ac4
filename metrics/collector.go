package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "xray"

// collector exposes the shared state as Prometheus metrics. All series are
// emitted as const metrics, so the published values always mirror the latest
// applied snapshot's absolute counters (latest wins, no accumulation) and
// departed users simply stop being emitted.
type collector struct {
	state *State

	uplink        *prometheus.Desc
	downlink      *prometheus.Desc
	traffic       *prometheus.Desc
	updateSuccess *prometheus.Desc
	blobTimestamp *prometheus.Desc
}

// NewCollector creates a Prometheus collector reading from the provided state
func NewCollector(state *State) (*collector, error) {
	if state == nil {
		return nil, errNilState
	}

	return &collector{
		state: state,
		uplink: prometheus.NewDesc(
			namespace+"_user_uplink_bytes_total",
			"Total uplink bytes per user",
			[]string{"server_id", "user"},
			nil,
		),
		downlink: prometheus.NewDesc(
			namespace+"_user_downlink_bytes_total",
			"Total downlink bytes per user",
			[]string{"server_id", "user"},
			nil,
		),
		traffic: prometheus.NewDesc(
			namespace+"_user_traffic_bytes_total",
			"Total (up+down) bytes per user",
			[]string{"server_id", "user"},
			nil,
		),
		updateSuccess: prometheus.NewDesc(
			namespace+"_last_update_success",
			"1 if the last metrics update from the blob store was successful, 0 otherwise",
			[]string{"server_id"},
			nil,
		),
		blobTimestamp: prometheus.NewDesc(
			namespace+"_last_blob_timestamp_seconds",
			"Timestamp of the latest stats blob applied",
			[]string{"server_id"},
			nil,
		),
	}, nil
}

// Describe implements prometheus.Collector
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uplink
	ch <- c.downlink
	ch <- c.traffic
	ch <- c.updateSuccess
	ch <- c.blobTimestamp
}

// Collect implements prometheus.Collector
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, view := range c.state.View() {
		success := 0.0
		if view.LastUpdateSuccess {
			success = 1.0
		}

		ch <- prometheus.MustNewConstMetric(c.updateSuccess, prometheus.GaugeValue, success, view.ServerID)
		ch <- prometheus.MustNewConstMetric(c.blobTimestamp, prometheus.GaugeValue, float64(view.LastBlobTimestamp), view.ServerID)

		for _, record := range view.Users {
			ch <- prometheus.MustNewConstMetric(c.uplink, prometheus.CounterValue, float64(record.UplinkBytes), view.ServerID, record.User)
			ch <- prometheus.MustNewConstMetric(c.downlink, prometheus.CounterValue, float64(record.DownlinkBytes), view.ServerID, record.User)
			ch <- prometheus.MustNewConstMetric(c.traffic, prometheus.CounterValue, float64(record.TotalBytes()), view.ServerID, record.User)
		}
	}
}
