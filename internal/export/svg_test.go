package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/rollup"
)

func TestRenderSVG_Deterministic(t *testing.T) {
	snap := exportSnapshot()
	opts := rollup.Options{PrimaryLens: "channels", SecondaryLens: "platforms"}
	engine := rollup.NewEngine()

	render := func() []byte {
		analysis := engine.Run(snap, opts)
		return RenderSVG(Plan(analysis, DefaultOptions()), DefaultOptions())
	}

	assert.Equal(t, render(), render(), "same snapshot must serialize byte-identically")
}

func TestRenderSVG_DimensionsMatchPlan(t *testing.T) {
	analysis := rollup.NewEngine().Run(exportSnapshot(), rollup.Options{
		PrimaryLens:   "channels",
		SecondaryLens: "platforms",
	})
	doc := Plan(analysis, DefaultOptions())

	out := string(RenderSVG(doc, DefaultOptions()))

	assert.Contains(t, out, `width="1264" height="240"`)
	assert.Contains(t, out, `viewBox="0 0 1264 240"`)
	assert.Contains(t, out, `</svg>`)
}

func TestRenderSVG_EscapesText(t *testing.T) {
	doc := Doc{
		Width:  100,
		Height: 100,
		Texts:  []Text{{X: 1, Y: 1, Class: "name", Content: `R&D <"Lab">`}},
	}

	out := string(RenderSVG(doc, DefaultOptions()))

	assert.Contains(t, out, "R&amp;D &lt;&quot;Lab&quot;&gt;")
	assert.NotContains(t, out, `<"Lab">`)
}

func TestRenderSVG_ElementsInPlanOrder(t *testing.T) {
	doc := Doc{
		Width:  10,
		Height: 10,
		Rects: []Rect{
			{Fill: "#111111"},
			{Fill: "#222222"},
		},
	}

	out := string(RenderSVG(doc, DefaultOptions()))

	first := strings.Index(out, "#111111")
	second := strings.Index(out, "#222222")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "target-view-2024-03-09.svg", Filename(ts))
}
