package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/internal/storage/models"
)

// exportSnapshot builds two primary items with 3 and 5 related secondary
// items respectively, all Stable with Existing relationships.
func exportSnapshot() rollup.Snapshot {
	snap := rollup.Snapshot{
		Items: []models.Item{
			{ID: 1, Lens: "channels", Name: "Web"},
			{ID: 2, Lens: "channels", Name: "Mobile"},
		},
		Lenses: []models.Lens{
			{Key: "channels", Label: "Channels"},
			{Key: "platforms", Label: "Platforms"},
		},
	}

	nextItem := int64(10)
	nextRel := int64(100)
	addSecondaries := func(primaryID int64, count int) {
		for i := 0; i < count; i++ {
			id := nextItem
			nextItem++
			snap.Items = append(snap.Items, models.Item{
				ID: id, Lens: "platforms",
				Name:            fmt.Sprintf("P%d-%d", primaryID, i),
				LifecycleStatus: models.StatusStable,
			})
			snap.Relationships = append(snap.Relationships, models.Relationship{
				ID: nextRel, FromItemID: primaryID, ToItemID: id,
				FromLens: "channels", ToLens: "platforms",
			})
			nextRel++
		}
	}
	addSecondaries(1, 3)
	addSecondaries(2, 5)

	return snap
}

// With default geometry: padding 24, header 24, band one is a single row
// (48), band two is two rows (104), one group gap (16) between bands.
func TestPlan_TwoPassHeightIsExact(t *testing.T) {
	analysis := rollup.NewEngine().Run(exportSnapshot(), rollup.Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
	})
	require.Len(t, analysis.Results, 2)

	doc := Plan(analysis, DefaultOptions())

	assert.Equal(t, 240, doc.Height)
	assert.Equal(t, 1264, doc.Width)

	// No drawable may extend past the declared canvas.
	for _, rect := range doc.Rects {
		assert.LessOrEqual(t, rect.X+rect.W, doc.Width)
		assert.LessOrEqual(t, rect.Y+rect.H, doc.Height)
	}
}

func TestPlan_EmptyAnalysis(t *testing.T) {
	doc := Plan(&rollup.Analysis{}, DefaultOptions())

	opts := DefaultOptions()
	assert.Equal(t, opts.Padding*2+opts.FontSize*2, doc.Height)
	require.NotEmpty(t, doc.Rects, "background rect is always present")
	assert.Len(t, doc.Rects, 1)
}

func TestPlan_OnlyRelatedSummarizesUngrouped(t *testing.T) {
	snap := exportSnapshot()
	// One roll-up item connected to a single secondary; the rest stay
	// ungrouped and collapse into count boxes.
	snap.Items = append(snap.Items, models.Item{ID: 50, Lens: "capabilities", Name: "Commerce"})
	snap.Lenses = append(snap.Lenses, models.Lens{Key: "capabilities", Label: "Capabilities"})
	snap.Relationships = append(snap.Relationships, models.Relationship{
		ID: 200, FromItemID: 10, ToItemID: 50, FromLens: "platforms", ToLens: "capabilities",
	})

	analysis := rollup.NewEngine().Run(snap, rollup.Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupLens:    "capabilities",
		RollupMode:    rollup.RollupModeLens,
		Display:       rollup.DisplayOnlyRelated,
	})

	doc := Plan(analysis, DefaultOptions())

	assert.True(t, hasText(doc, "+2 other Platforms"), "ungrouped items collapse to a count box")
	assert.False(t, hasText(doc, "P1-1"), "secondary items are never drawn in only-related mode")
	assert.True(t, hasText(doc, "Commerce"))
}

func TestPlan_ShowSecondaryEnumeratesUngrouped(t *testing.T) {
	snap := exportSnapshot()
	snap.Items = append(snap.Items, models.Item{ID: 50, Lens: "capabilities", Name: "Commerce"})
	snap.Relationships = append(snap.Relationships, models.Relationship{
		ID: 200, FromItemID: 10, ToItemID: 50, FromLens: "platforms", ToLens: "capabilities",
	})

	analysis := rollup.NewEngine().Run(snap, rollup.Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
		RollupLens:    "capabilities",
		RollupMode:    rollup.RollupModeLens,
		Display:       rollup.DisplayShowSecondary,
	})

	doc := Plan(analysis, DefaultOptions())

	assert.True(t, hasText(doc, "P1-1"), "ungrouped items are enumerated individually")
	assert.True(t, hasText(doc, "Commerce"))
}

func TestStatusFill(t *testing.T) {
	theme := DefaultOptions().Theme

	tests := []struct {
		status string
		want   string
	}{
		{models.StatusDivest, theme.Error},
		{models.StatusInvest, theme.Success},
		{models.StatusPlan, theme.Info},
		{models.StatusEmerging, theme.Warning},
		{models.StatusStable, theme.Primary},
		{"", theme.Primary},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFill(tt.status, theme), "status %q", tt.status)
	}
}

func TestWrapText(t *testing.T) {
	// fontSize 12 gives 7.2px per rune; 144px fits 20 runes.
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"fits", "Payments", []string{"Payments"}},
		{"breaks at word boundary", "Customer Identity Platform", []string{"Customer Identity", "Platform"}},
		{"long single word stands alone", "Hyperpersonalizationengine x", []string{"Hyperpersonalizationengine", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.in, 144, 12))
		})
	}
}

func TestWrapText_CapsAtTwoLines(t *testing.T) {
	lines := wrapText("one two three four five six seven eight nine ten eleven", 40, 12)

	assert.Len(t, lines, 2)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 144, 12))

	long := truncate("this description is far too long to fit", 72, 12)
	assert.LessOrEqual(t, len([]rune(long)), 10)
	assert.Contains(t, long, "…")
}

func hasText(doc Doc, content string) bool {
	for _, text := range doc.Texts {
		if text.Content == content {
			return true
		}
	}
	return false
}
