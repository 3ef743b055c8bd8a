package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/storage/models"
)

func TestBuildIndex_BothDirections(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
			{ID: 2, Lens: "platforms", Name: "Payments"},
			{ID: 3, Lens: "platforms", Name: "Identity"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 2, FromLens: "channels", ToLens: "platforms"},
			{ID: 11, FromItemID: 3, ToItemID: 1, FromLens: "platforms", ToLens: "channels"},
		},
	}

	idx := BuildIndex(snap, "channels", "platforms")

	require.Len(t, idx.Primaries, 1)
	links := idx.Links[1]
	require.Len(t, links, 2)
	assert.Equal(t, int64(2), links[0].Secondary.ID)
	assert.Equal(t, int64(3), links[1].Secondary.ID)
}

// A single one-sided row must be found from both of its endpoints: mirror
// writes are not transactional and the reverse row can be missing.
func TestBuildIndex_MissingMirror(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
			{ID: 2, Lens: "platforms", Name: "Payments"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 2, FromLens: "channels", ToLens: "platforms"},
		},
	}

	fromA := BuildIndex(snap, "channels", "platforms")
	require.Len(t, fromA.Links[1], 1)
	assert.Equal(t, int64(2), fromA.Links[1][0].Secondary.ID)

	fromB := BuildIndex(snap, "platforms", "channels")
	require.Len(t, fromB.Links[2], 1)
	assert.Equal(t, int64(1), fromB.Links[2][0].Secondary.ID)
}

func TestBuildIndex_DanglingReferencesSkipped(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 99, FromLens: "channels", ToLens: "platforms"},
			{ID: 11, FromItemID: 98, ToItemID: 1, FromLens: "platforms", ToLens: "channels"},
		},
	}

	idx := BuildIndex(snap, "channels", "platforms")

	require.Len(t, idx.Primaries, 1)
	assert.Empty(t, idx.Links[1])
}

func TestBuildIndex_EmptySelection(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{{ID: 1, Lens: "channels", Name: "Web"}},
	}

	assert.Empty(t, BuildIndex(snap, "", "platforms").Primaries)
	assert.Empty(t, BuildIndex(snap, "channels", "").Primaries)
	assert.Empty(t, BuildIndex(snap, "missing", "platforms").Primaries)
}

func TestBuildIndex_NoLifecycleFiltering(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
			{ID: 2, Lens: "platforms", Name: "Payments"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 2, FromLens: "channels", ToLens: "platforms",
				LifecycleStatus: models.RelStatusPlannedToAdd},
		},
	}

	idx := BuildIndex(snap, "channels", "platforms")

	assert.Len(t, idx.Links[1], 1, "index must keep rows regardless of lifecycle status")
}
