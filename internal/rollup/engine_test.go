package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/storage/models"
)

// Primary A relates to B (Invest) and C (Divest), both Existing. B lands
// in both buckets; C stays current-only because Divest is excluded from
// Target.
func TestEngine_InvestAndDivestScenario(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "A"},
			{ID: 2, Lens: "platforms", Name: "B", LifecycleStatus: models.StatusInvest},
			{ID: 3, Lens: "platforms", Name: "C", LifecycleStatus: models.StatusDivest},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 2, FromLens: "channels", ToLens: "platforms",
				LifecycleStatus: models.RelStatusExisting},
			{ID: 11, FromItemID: 1, ToItemID: 3, FromLens: "channels", ToLens: "platforms",
				LifecycleStatus: models.RelStatusExisting},
		},
	}

	analysis := NewEngine().Run(snap, Options{PrimaryLens: "channels", SecondaryLens: "platforms"})

	require.Len(t, analysis.Results, 1)
	result := analysis.Results[0]

	assert.Equal(t, []string{"B", "C"}, itemNames(result.Current))
	assert.Equal(t, []string{"B"}, itemNames(result.Target))
}

func TestEngine_EmptySelectionYieldsEmptyResult(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{{ID: 1, Lens: "channels", Name: "A"}},
	}

	analysis := NewEngine().Run(snap, Options{})

	assert.Empty(t, analysis.Results)
}

func TestEngine_FilterItem(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "A"},
			{ID: 2, Lens: "channels", Name: "B"},
			{ID: 3, Lens: "platforms", Name: "P"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 3, FromLens: "channels", ToLens: "platforms"},
			{ID: 11, FromItemID: 2, ToItemID: 3, FromLens: "channels", ToLens: "platforms"},
		},
	}

	analysis := NewEngine().Run(snap, Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		FilterItemID:  2,
	})

	require.Len(t, analysis.Results, 1)
	assert.Equal(t, "B", analysis.Results[0].Primary.Name)
}

func TestEngine_SecondaryLensLabel(t *testing.T) {
	snap := Snapshot{
		Lenses: []models.Lens{{Key: "platforms", Label: "Platforms"}},
	}

	analysis := NewEngine().Run(snap, Options{PrimaryLens: "channels", SecondaryLens: "platforms"})
	assert.Equal(t, "Platforms", analysis.SecondaryLensLabel)

	analysis = NewEngine().Run(snap, Options{PrimaryLens: "channels", SecondaryLens: "unknown"})
	assert.Equal(t, "unknown", analysis.SecondaryLensLabel, "missing lens falls back to the key")
}
