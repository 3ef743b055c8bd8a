package export

import (
	"fmt"
	"strings"

	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/internal/storage/models"
)

// Options carries the box geometry and theme for one export. Values come
// from configuration; DefaultOptions matches the config defaults so tests
// and callers without a config file agree on output.
type Options struct {
	FontSize       int
	BoxWidth       int
	BoxHeight      int
	BoxGap         int
	ColumnGap      int
	GroupGap       int
	Padding        int
	MaxBoxesPerRow int
	Theme          Theme
}

// Theme maps semantic color names to fills. Lifecycle statuses pick their
// fill through statusFill so the on-screen renderer and the SVG export
// cannot drift apart.
type Theme struct {
	Error      string
	Success    string
	Info       string
	Warning    string
	Primary    string
	Text       string
	Background string
}

func DefaultOptions() Options {
	return Options{
		FontSize:       12,
		BoxWidth:       160,
		BoxHeight:      48,
		BoxGap:         8,
		ColumnGap:      32,
		GroupGap:       16,
		Padding:        24,
		MaxBoxesPerRow: 3,
		Theme: Theme{
			Error:      "#d32f2f",
			Success:    "#2e7d32",
			Info:       "#0288d1",
			Warning:    "#ed6c02",
			Primary:    "#1976d2",
			Text:       "#ffffff",
			Background: "#fafafa",
		},
	}
}

// Doc is the fully measured drawing plan. Width and Height are final
// before any element is emitted; the serializer never resizes.
type Doc struct {
	Width  int
	Height int
	Rects  []Rect
	Texts  []Text
}

type Rect struct {
	X, Y, W, H int
	Fill       string
}

type Text struct {
	X, Y    int
	Class   string
	Content string
}

// box is one measured cell before placement.
type box struct {
	lines []string
	minor string
	fill  string
}

// band is the horizontal strip for one primary item: its own box plus the
// Current and Target columns.
type band struct {
	primary box
	current []box
	target  []box
	height  int
}

// Plan lays out the analysis as a fixed grid: one band per primary item,
// a Current and a Target column, up to MaxBoxesPerRow boxes per row. The
// measurement pass sizes every band before a single element is placed.
func Plan(analysis *rollup.Analysis, opts Options) Doc {
	bands := make([]band, 0, len(analysis.Results))
	for _, result := range analysis.Results {
		bands = append(bands, buildBand(analysis, result, opts))
	}

	headerHeight := opts.FontSize * 2
	columnWidth := opts.MaxBoxesPerRow*opts.BoxWidth + (opts.MaxBoxesPerRow-1)*opts.BoxGap

	doc := Doc{
		Width: opts.Padding*2 + opts.BoxWidth + opts.ColumnGap*2 + columnWidth*2,
	}

	totalHeight := opts.Padding*2 + headerHeight
	for _, b := range bands {
		totalHeight += b.height + opts.GroupGap
	}
	if len(bands) > 0 {
		totalHeight -= opts.GroupGap
	}
	doc.Height = totalHeight

	// Draw pass. Positions only; every size is already known.
	doc.Rects = append(doc.Rects, Rect{X: 0, Y: 0, W: doc.Width, H: doc.Height, Fill: opts.Theme.Background})

	primaryX := opts.Padding
	currentX := primaryX + opts.BoxWidth + opts.ColumnGap
	targetX := currentX + columnWidth + opts.ColumnGap

	doc.Texts = append(doc.Texts,
		Text{X: currentX, Y: opts.Padding + opts.FontSize, Class: "heading", Content: "Current"},
		Text{X: targetX, Y: opts.Padding + opts.FontSize, Class: "heading", Content: "Target"},
	)

	y := opts.Padding + headerHeight
	for _, b := range bands {
		placeBox(&doc, b.primary, primaryX, y, opts)
		placeColumn(&doc, b.current, currentX, y, opts)
		placeColumn(&doc, b.target, targetX, y, opts)
		y += b.height + opts.GroupGap
	}

	return doc
}

func buildBand(analysis *rollup.Analysis, result rollup.PrimaryResult, opts Options) band {
	b := band{
		primary: itemBox(result.Primary, opts),
		current: columnBoxes(analysis, result, result.Current, result.UngroupedCurrent(),
			func(g rollup.Group) []models.Item { return g.Current }, opts),
		target: columnBoxes(analysis, result, result.Target, result.UngroupedTarget(),
			func(g rollup.Group) []models.Item { return g.Target }, opts),
	}

	b.height = opts.BoxHeight
	if h := gridHeight(len(b.current), opts); h > b.height {
		b.height = h
	}
	if h := gridHeight(len(b.target), opts); h > b.height {
		b.height = h
	}

	return b
}

// columnBoxes assembles one column. Without a roll-up the bucket items are
// enumerated directly. With a roll-up only the group boxes are drawn;
// ungrouped items are either summarized as a "+N other <lens>" count box
// (only-related) or enumerated individually (show-secondary).
func columnBoxes(analysis *rollup.Analysis, result rollup.PrimaryResult, bucket, ungrouped []models.Item, groupMembers func(rollup.Group) []models.Item, opts Options) []box {
	hasRollup := analysis.Options.RollupMode == rollup.RollupModeLens ||
		analysis.Options.RollupMode == rollup.RollupModeParent

	if !hasRollup {
		boxes := make([]box, 0, len(bucket))
		for _, item := range bucket {
			boxes = append(boxes, itemBox(item, opts))
		}
		return boxes
	}

	var boxes []box
	for _, group := range result.Groups {
		if len(groupMembers(group)) == 0 {
			continue
		}
		boxes = append(boxes, groupBox(group, opts))
	}

	switch analysis.Options.Display {
	case rollup.DisplayShowSecondary:
		for _, item := range ungrouped {
			boxes = append(boxes, itemBox(item, opts))
		}
	default:
		if len(ungrouped) > 0 {
			label := fmt.Sprintf("+%d other %s", len(ungrouped), analysis.SecondaryLensLabel)
			boxes = append(boxes, box{
				lines: wrapText(label, textWidth(opts), opts.FontSize),
				fill:  opts.Theme.Primary,
			})
		}
	}

	return boxes
}

func itemBox(item models.Item, opts Options) box {
	minor := item.LifecycleStatus
	if minor == "" {
		minor = truncate(item.Description, textWidth(opts), opts.FontSize-2)
	}

	return box{
		lines: wrapText(item.Name, textWidth(opts), opts.FontSize),
		minor: minor,
		fill:  statusFill(item.LifecycleStatus, opts.Theme),
	}
}

// groupBox colors a lens roll-up by the roll-up item's own lifecycle
// status; parent roll-ups have no backing item and use the primary color.
func groupBox(group rollup.Group, opts Options) box {
	fill := opts.Theme.Primary
	minor := ""
	if group.RollupItem != nil {
		fill = statusFill(group.RollupItem.LifecycleStatus, opts.Theme)
		minor = group.RollupItem.LifecycleStatus
	}

	return box{
		lines: wrapText(group.Label, textWidth(opts), opts.FontSize),
		minor: minor,
		fill:  fill,
	}
}

func placeColumn(doc *Doc, boxes []box, x, y int, opts Options) {
	for i, b := range boxes {
		row := i / opts.MaxBoxesPerRow
		col := i % opts.MaxBoxesPerRow
		placeBox(doc, b,
			x+col*(opts.BoxWidth+opts.BoxGap),
			y+row*(opts.BoxHeight+opts.BoxGap),
			opts)
	}
}

func placeBox(doc *Doc, b box, x, y int, opts Options) {
	doc.Rects = append(doc.Rects, Rect{X: x, Y: y, W: opts.BoxWidth, H: opts.BoxHeight, Fill: b.fill})

	textX := x + textPad
	textY := y + textPad + opts.FontSize - 2
	for _, line := range b.lines {
		doc.Texts = append(doc.Texts, Text{X: textX, Y: textY, Class: "name", Content: line})
		textY += opts.FontSize + 2
	}
	if b.minor != "" {
		doc.Texts = append(doc.Texts, Text{X: textX, Y: y + opts.BoxHeight - textPad + 2, Class: "minor", Content: b.minor})
	}
}

func gridHeight(boxCount int, opts Options) int {
	if boxCount == 0 {
		return 0
	}
	rows := (boxCount + opts.MaxBoxesPerRow - 1) / opts.MaxBoxesPerRow
	return rows*(opts.BoxHeight+opts.BoxGap) - opts.BoxGap
}

const textPad = 8

func textWidth(opts Options) int {
	return opts.BoxWidth - 2*textPad
}

// statusFill is the single source of the lifecycle-status color rules.
func statusFill(status string, theme Theme) string {
	switch status {
	case models.StatusDivest:
		return theme.Error
	case models.StatusInvest:
		return theme.Success
	case models.StatusPlan:
		return theme.Info
	case models.StatusEmerging:
		return theme.Warning
	default:
		return theme.Primary
	}
}

// charWidth approximates rendered width as 0.6 x fontSize per rune. No
// font metrics are available at export time; this heuristic defines the
// layout and must not be replaced with real measurement.
func charWidth(fontSize int) float64 {
	return 0.6 * float64(fontSize)
}

func textFits(s string, maxWidth, fontSize int) bool {
	return float64(len([]rune(s)))*charWidth(fontSize) <= float64(maxWidth)
}

// wrapText breaks at word boundaries, capped at two lines with the second
// ellipsized on overflow. A single word longer than the line stands alone.
func wrapText(s string, maxWidth, fontSize int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if textFits(candidate, maxWidth, fontSize) {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	lines = append(lines, line)

	if len(lines) > 2 {
		lines = lines[:2]
		lines[1] = truncate(lines[1]+"…", maxWidth, fontSize)
	}
	return lines
}

func truncate(s string, maxWidth, fontSize int) string {
	if textFits(s, maxWidth, fontSize) {
		return s
	}

	runes := []rune(s)
	max := int(float64(maxWidth) / charWidth(fontSize))
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
