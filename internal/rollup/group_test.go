package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/storage/models"
)

// groupingSnapshot builds: primary Web (channels), secondaries Payments,
// Identity, Search (platforms, all Stable), roll-ups Commerce and Security
// (capabilities). Payments belongs to both roll-ups, Identity to Security,
// Search to none.
func groupingSnapshot() Snapshot {
	return Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
			{ID: 2, Lens: "platforms", Name: "Payments", LifecycleStatus: models.StatusStable, Parent: "Core"},
			{ID: 3, Lens: "platforms", Name: "Identity", LifecycleStatus: models.StatusStable, Parent: "Core"},
			{ID: 4, Lens: "platforms", Name: "Search", LifecycleStatus: models.StatusStable},
			{ID: 5, Lens: "capabilities", Name: "Commerce", LifecycleStatus: models.StatusInvest},
			{ID: 6, Lens: "capabilities", Name: "Security"},
		},
		Relationships: []models.Relationship{
			{ID: 10, FromItemID: 1, ToItemID: 2, FromLens: "channels", ToLens: "platforms"},
			{ID: 11, FromItemID: 1, ToItemID: 3, FromLens: "channels", ToLens: "platforms"},
			{ID: 12, FromItemID: 1, ToItemID: 4, FromLens: "channels", ToLens: "platforms"},
			{ID: 13, FromItemID: 2, ToItemID: 5, FromLens: "platforms", ToLens: "capabilities"},
			{ID: 14, FromItemID: 6, ToItemID: 2, FromLens: "capabilities", ToLens: "platforms"},
			{ID: 15, FromItemID: 3, ToItemID: 6, FromLens: "platforms", ToLens: "capabilities"},
		},
		Lenses: []models.Lens{
			{Key: "channels", Label: "Channels"},
			{Key: "platforms", Label: "Platforms"},
			{Key: "capabilities", Label: "Capabilities"},
		},
	}
}

func TestLensRollup(t *testing.T) {
	engine := NewEngine()
	analysis := engine.Run(groupingSnapshot(), Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupLens:    "capabilities",
		RollupMode:    RollupModeLens,
	})

	require.Len(t, analysis.Results, 1)
	result := analysis.Results[0]

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "Commerce", result.Groups[0].Label)
	assert.Equal(t, "Security", result.Groups[1].Label)

	// Payments sits in both groups it connects to.
	assert.Equal(t, []string{"Payments"}, itemNames(result.Groups[0].Members))
	assert.Equal(t, []string{"Identity", "Payments"}, itemNames(result.Groups[1].Members))

	require.Len(t, result.Ungrouped, 1)
	assert.Equal(t, "Search", result.Ungrouped[0].Name)
}

func TestLensRollup_GroupBucketsIntersectPrimaryBuckets(t *testing.T) {
	snap := groupingSnapshot()
	// Identity becomes Plan: excluded from Current, still in Target.
	snap.Items[2].LifecycleStatus = models.StatusPlan

	analysis := NewEngine().Run(snap, Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupLens:    "capabilities",
		RollupMode:    RollupModeLens,
	})

	result := analysis.Results[0]
	security := result.Groups[1]
	require.Equal(t, "Security", security.Label)

	assert.Equal(t, []string{"Payments"}, itemNames(security.Current))
	assert.Equal(t, []string{"Identity", "Payments"}, itemNames(security.Target))
}

func TestParentRollup_NoParentSortsLast(t *testing.T) {
	analysis := NewEngine().Run(groupingSnapshot(), Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupMode:    RollupModeParent,
	})

	require.Len(t, analysis.Results, 1)
	groups := analysis.Results[0].Groups

	require.Len(t, groups, 2)
	assert.Equal(t, "Core", groups[0].Label)
	assert.Equal(t, NoParentLabel, groups[1].Label)
	assert.Equal(t, []string{"Search"}, itemNames(groups[1].Members))
}

func TestRollup_Idempotent(t *testing.T) {
	snap := groupingSnapshot()
	opts := Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupLens:    "capabilities",
		RollupMode:    RollupModeLens,
	}

	engine := NewEngine()
	first := engine.Run(snap, opts)
	second := engine.Run(snap, opts)

	assert.Equal(t, first, second)
}

func itemNames(items []models.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
