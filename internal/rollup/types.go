package rollup

import "github.com/archlens/backend/internal/storage/models"

// Roll-up modes.
const (
	RollupModeLens   = "lens"
	RollupModeParent = "parent"
)

// Display sub-modes.
const (
	DisplayOnlyRelated   = "only-related"
	DisplayShowSecondary = "show-secondary"
)

// NoParentLabel is the implicit bucket for parent roll-ups over items with
// no parent set. It always sorts after every named bucket.
const NoParentLabel = "(No Parent)"

// Snapshot is an immutable view of the catalog loaded in full before a run.
// The engine never mutates it.
type Snapshot struct {
	Items         []models.Item
	Relationships []models.Relationship
	Lenses        []models.Lens
}

// Options selects the lenses and modes for one analysis run.
type Options struct {
	PrimaryLens   string
	SecondaryLens string
	RollupLens    string
	RollupMode    string
	Display       string

	// FilterItemID restricts the run to a single primary item when non-zero.
	FilterItemID int64
}

// Link is one relationship row connecting a primary item to a resolved
// secondary item, in whichever direction the row was stored.
type Link struct {
	Secondary models.Item
	Rel       models.Relationship
}

// Index holds, per primary-lens item, every relationship row connecting it
// to a secondary-lens item in either direction.
type Index struct {
	Primaries []models.Item
	Links     map[int64][]Link
}

// Group is one roll-up bucket under a primary item. RollupItem is set for
// lens roll-ups; parent roll-ups carry only a label.
type Group struct {
	RollupItem *models.Item  `json:"rollup_item,omitempty"`
	Label      string        `json:"label"`
	Members    []models.Item `json:"members"`
	Current    []models.Item `json:"current_items"`
	Target     []models.Item `json:"target_items"`
}

// PrimaryResult is the classified and grouped view for one primary item.
type PrimaryResult struct {
	Primary   models.Item   `json:"primary_item"`
	Current   []models.Item `json:"current_items"`
	Target    []models.Item `json:"target_items"`
	Groups    []Group       `json:"rollup_groups,omitempty"`
	Ungrouped []models.Item `json:"ungrouped_items,omitempty"`
}

// Analysis is the full engine output for one run.
type Analysis struct {
	Options Options         `json:"options"`
	Results []PrimaryResult `json:"results"`

	// SecondaryLensLabel feeds the "+N other <lens>" summary boxes.
	SecondaryLensLabel string `json:"secondary_lens_label,omitempty"`
}

// UngroupedCurrent returns the ungrouped items that sit in the Current
// bucket, preserving bucket order.
func (r PrimaryResult) UngroupedCurrent() []models.Item {
	return intersectByID(r.Ungrouped, r.Current)
}

// UngroupedTarget returns the ungrouped items that sit in the Target bucket.
func (r PrimaryResult) UngroupedTarget() []models.Item {
	return intersectByID(r.Ungrouped, r.Target)
}

// intersectByID keeps the items of a that also appear in b, in a's order.
func intersectByID(a, b []models.Item) []models.Item {
	ids := make(map[int64]bool, len(b))
	for _, item := range b {
		ids[item.ID] = true
	}

	var out []models.Item
	for _, item := range a {
		if ids[item.ID] {
			out = append(out, item)
		}
	}
	return out
}
