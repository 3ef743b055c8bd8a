package rollup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archlens/backend/internal/storage/models"
)

// TestClassify_FullGrid enumerates every (item status, relationship status)
// combination, including both unset values.
func TestClassify_FullGrid(t *testing.T) {
	wantCurrent := func(itemStatus, relStatus string) bool {
		if relStatus == models.RelStatusPlannedToAdd {
			return false
		}
		switch itemStatus {
		case models.StatusInvest, models.StatusDivest, models.StatusStable, "":
			return true
		}
		return false
	}
	wantTarget := func(itemStatus, relStatus string) bool {
		if relStatus == models.RelStatusPlannedToRemove {
			return false
		}
		return itemStatus != models.StatusDivest
	}

	for _, itemStatus := range models.ItemStatuses {
		for _, relStatus := range models.RelStatuses {
			name := fmt.Sprintf("item=%q/rel=%q", itemStatus, relStatus)
			t.Run(name, func(t *testing.T) {
				effective := relStatus
				if effective == "" {
					effective = models.RelStatusExisting
				}

				m := Classify(itemStatus, relStatus)
				assert.Equal(t, wantCurrent(itemStatus, effective), m.Current, "current membership")
				assert.Equal(t, wantTarget(itemStatus, effective), m.Target, "target membership")
			})
		}
	}
}

func TestClassify_StableExistingInBothBuckets(t *testing.T) {
	m := Classify(models.StatusStable, models.RelStatusExisting)

	assert.True(t, m.Current)
	assert.True(t, m.Target)
}

func TestClassify_DivestPlannedToAddInNeitherBucket(t *testing.T) {
	m := Classify(models.StatusDivest, models.RelStatusPlannedToAdd)

	assert.False(t, m.Current)
	assert.False(t, m.Target)
}

func TestClassify_UnsetRelStatusTreatedAsExisting(t *testing.T) {
	assert.Equal(t, Classify(models.StatusInvest, models.RelStatusExisting), Classify(models.StatusInvest, ""))
	assert.Equal(t, Classify("", models.RelStatusExisting), Classify("", ""))
}

func TestClassify_UnknownStatusFallsBackToUnset(t *testing.T) {
	assert.Equal(t, Classify("", models.RelStatusExisting), Classify("Retired", models.RelStatusExisting))
}

func TestClassifyLinks_DeduplicatesById(t *testing.T) {
	secondary := models.Item{ID: 7, Name: "Payments", LifecycleStatus: models.StatusStable}
	links := []Link{
		{Secondary: secondary, Rel: models.Relationship{ID: 1, LifecycleStatus: models.RelStatusExisting}},
		{Secondary: secondary, Rel: models.Relationship{ID: 2, LifecycleStatus: models.RelStatusExisting}},
	}

	current, target := classifyLinks(links)

	assert.Len(t, current, 1)
	assert.Len(t, target, 1)
}

// An item reached through several relationships is included when any of
// them includes it.
func TestClassifyLinks_UnionAcrossRelationships(t *testing.T) {
	secondary := models.Item{ID: 7, Name: "Payments", LifecycleStatus: models.StatusStable}
	links := []Link{
		{Secondary: secondary, Rel: models.Relationship{ID: 1, LifecycleStatus: models.RelStatusPlannedToAdd}},
		{Secondary: secondary, Rel: models.Relationship{ID: 2, LifecycleStatus: models.RelStatusExisting}},
	}

	current, target := classifyLinks(links)

	assert.Len(t, current, 1, "existing relationship should pull the item into Current")
	assert.Len(t, target, 1)
}
