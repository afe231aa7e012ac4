package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xray-tools/blob-stats-exporter/common"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("invalid JSON should error", func(t *testing.T) {
		batch, err := Parse("sg01", []byte(`{"users": {`))

		assert.True(t, errors.Is(err, ErrMalformedSnapshot))
		assert.Empty(t, batch.Records)
	})
	t.Run("missing users field should error", func(t *testing.T) {
		batch, err := Parse("sg01", []byte(`{"timestamp": 1700000000}`))

		assert.True(t, errors.Is(err, ErrMalformedSnapshot))
		assert.Empty(t, batch.Records)
	})
	t.Run("non-object users field should error", func(t *testing.T) {
		batch, err := Parse("sg01", []byte(`{"users": [1, 2, 3]}`))

		assert.True(t, errors.Is(err, ErrMalformedSnapshot))
		assert.Empty(t, batch.Records)
	})
	t.Run("should parse valid entries", func(t *testing.T) {
		data := []byte(`{"users": {"user1@example.com": {"up": 123456, "down": 789012}, "user2@domain.net": {"up": 456, "down": 111}}, "timestamp": 1700000000}`)

		batch, err := Parse("sg01", data)

		require.NoError(t, err)
		assert.Equal(t, "sg01", batch.ServerID)
		assert.Equal(t, int64(1700000000), batch.Timestamp)
		require.Len(t, batch.Records, 2)
		assert.Equal(t, common.TrafficRecord{
			User:          "user1@example.com",
			UplinkBytes:   123456,
			DownlinkBytes: 789012,
		}, batch.Records[0])
		assert.Equal(t, uint64(123456+789012), batch.Records[0].TotalBytes())
	})
	t.Run("should skip malformed entries and keep valid ones", func(t *testing.T) {
		data := []byte(`{"users": {"alice": {"up": 100, "down": 50}, "bob": {"up": "bad", "down": 10}}}`)

		batch, err := Parse("sg01", data)

		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "alice", batch.Records[0].User)
		assert.Equal(t, uint64(100), batch.Records[0].UplinkBytes)
		assert.Equal(t, uint64(50), batch.Records[0].DownlinkBytes)
	})
	t.Run("should skip entries with missing, negative or fractional counters", func(t *testing.T) {
		data := []byte(`{"users": {
			"missing-down": {"up": 1},
			"negative": {"up": -1, "down": 2},
			"fractional": {"up": 1.5, "down": 2},
			"not-an-object": 42,
			"ok": {"up": 0, "down": 0}
		}}`)

		batch, err := Parse("sg01", data)

		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "ok", batch.Records[0].User)
	})
	t.Run("zero valid entries should yield an empty batch, not an error", func(t *testing.T) {
		data := []byte(`{"users": {"bob": {"up": "bad", "down": "worse"}}}`)

		batch, err := Parse("sg01", data)

		require.NoError(t, err)
		assert.Empty(t, batch.Records)
	})
	t.Run("empty users object should yield an empty batch", func(t *testing.T) {
		batch, err := Parse("sg01", []byte(`{"users": {}}`))

		require.NoError(t, err)
		assert.Empty(t, batch.Records)
	})
	t.Run("parsing is deterministic", func(t *testing.T) {
		data := []byte(`{"users": {"a": {"up": 1, "down": 2}, "b": {"up": 3, "down": 4}}, "timestamp": 42}`)

		batch1, err1 := Parse("sg01", data)
		batch2, err2 := Parse("sg01", data)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, batch1, batch2)
	})
	t.Run("large counters should not lose precision", func(t *testing.T) {
		data := []byte(`{"users": {"heavy": {"up": 18446744073709551615, "down": 0}}}`)

		batch, err := Parse("sg01", data)

		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, uint64(18446744073709551615), batch.Records[0].UplinkBytes)
	})
}
