package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xray-tools/blob-stats-exporter/common"
)

func TestSelectLatest(t *testing.T) {
	t.Parallel()

	t.Run("empty sequence yields nothing", func(t *testing.T) {
		_, found := SelectLatest(nil)
		assert.False(t, found)

		_, found = SelectLatest([]common.SnapshotObject{})
		assert.False(t, found)
	})
	t.Run("picks the maximum timestamp", func(t *testing.T) {
		objects := []common.SnapshotObject{
			{Name: "sg01/100.json", LastModified: time.Unix(100, 0)},
			{Name: "sg01/200.json", LastModified: time.Unix(200, 0)},
		}

		selected, found := SelectLatest(objects)

		require.True(t, found)
		assert.Equal(t, "sg01/200.json", selected.Name)
	})
	t.Run("selection does not depend on listing order", func(t *testing.T) {
		objects := []common.SnapshotObject{
			{Name: "sg01/300.json", LastModified: time.Unix(300, 0)},
			{Name: "sg01/100.json", LastModified: time.Unix(100, 0)},
			{Name: "sg01/200.json", LastModified: time.Unix(200, 0)},
		}
		reversed := []common.SnapshotObject{objects[2], objects[1], objects[0]}

		selected1, _ := SelectLatest(objects)
		selected2, _ := SelectLatest(reversed)

		assert.Equal(t, selected1, selected2)
		assert.Equal(t, "sg01/300.json", selected1.Name)
	})
	t.Run("ties are broken by the lexicographically greatest name", func(t *testing.T) {
		sameInstant := time.Unix(500, 0)
		objects := []common.SnapshotObject{
			{Name: "sg01/a.json", LastModified: sameInstant},
			{Name: "sg01/c.json", LastModified: sameInstant},
			{Name: "sg01/b.json", LastModified: sameInstant},
		}

		selected, found := SelectLatest(objects)

		require.True(t, found)
		assert.Equal(t, "sg01/c.json", selected.Name)

		reversed := []common.SnapshotObject{objects[1], objects[2], objects[0]}
		selectedAgain, _ := SelectLatest(reversed)
		assert.Equal(t, selected, selectedAgain)
	})
}

func TestSnapshotTimestamp(t *testing.T) {
	t.Parallel()

	t.Run("blob name timestamp wins", func(t *testing.T) {
		object := common.SnapshotObject{
			Name:         "sg01/1700000000.json",
			LastModified: time.Unix(42, 0),
		}

		assert.Equal(t, int64(1700000000), snapshotTimestamp(object, 7))
	})
	t.Run("payload timestamp used when name is not numeric", func(t *testing.T) {
		object := common.SnapshotObject{
			Name:         "sg01/latest.json",
			LastModified: time.Unix(42, 0),
		}

		assert.Equal(t, int64(7), snapshotTimestamp(object, 7))
	})
	t.Run("falls back to last modified", func(t *testing.T) {
		object := common.SnapshotObject{
			Name:         "sg01/latest.json",
			LastModified: time.Unix(42, 0),
		}

		assert.Equal(t, int64(42), snapshotTimestamp(object, 0))
	})
}
