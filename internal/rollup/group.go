package rollup

import (
	"sort"

	"github.com/archlens/backend/internal/storage/models"
)

// buildGroups re-buckets one primary item's classified secondary items
// under the roll-up dimension. Lens mode clusters by a second relationship
// hop to rollupLens; parent mode clusters by the literal parent string.
// Groups are sorted by label, "(No Parent)" always last; members keep
// bucket order. Secondary items connected to no roll-up item land in the
// ungrouped list.
func buildGroups(snap Snapshot, byID map[int64]models.Item, result *PrimaryResult, opts Options) {
	classified := unionByID(result.Current, result.Target)
	if len(classified) == 0 {
		return
	}

	switch opts.RollupMode {
	case RollupModeLens:
		if opts.RollupLens == "" {
			return
		}
		buildLensGroups(snap, byID, result, classified, opts.RollupLens)
	case RollupModeParent:
		buildParentGroups(result, classified)
	}
}

func buildLensGroups(snap Snapshot, byID map[int64]models.Item, result *PrimaryResult, classified []models.Item, rollupLens string) {
	groups := make(map[int64]*Group)
	var order []int64

	for _, secondary := range classified {
		rollups := connectedItems(snap, byID, secondary.ID, rollupLens)
		if len(rollups) == 0 {
			result.Ungrouped = append(result.Ungrouped, secondary)
			continue
		}

		for _, rollupItem := range rollups {
			group, ok := groups[rollupItem.ID]
			if !ok {
				item := rollupItem
				group = &Group{RollupItem: &item, Label: item.Name}
				groups[rollupItem.ID] = group
				order = append(order, rollupItem.ID)
			}
			group.Members = append(group.Members, secondary)
		}
	}

	for _, id := range order {
		group := groups[id]
		group.Current = intersectByID(result.Current, group.Members)
		group.Target = intersectByID(result.Target, group.Members)
		result.Groups = append(result.Groups, *group)
	}

	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].Label < result.Groups[j].Label
	})
}

func buildParentGroups(result *PrimaryResult, classified []models.Item) {
	groups := make(map[string]*Group)
	var order []string

	for _, secondary := range classified {
		label := secondary.Parent
		if label == "" {
			label = NoParentLabel
		}

		group, ok := groups[label]
		if !ok {
			group = &Group{Label: label}
			groups[label] = group
			order = append(order, label)
		}
		group.Members = append(group.Members, secondary)
	}

	for _, label := range order {
		group := groups[label]
		group.Current = intersectByID(result.Current, group.Members)
		group.Target = intersectByID(result.Target, group.Members)
		result.Groups = append(result.Groups, *group)
	}

	sort.SliceStable(result.Groups, func(i, j int) bool {
		iNoParent := result.Groups[i].Label == NoParentLabel
		jNoParent := result.Groups[j].Label == NoParentLabel
		if iNoParent != jNoParent {
			return jNoParent
		}
		return result.Groups[i].Label < result.Groups[j].Label
	})
}

// unionByID merges two bucket slices keeping first occurrence order.
func unionByID(a, b []models.Item) []models.Item {
	seen := make(map[int64]bool, len(a)+len(b))
	var out []models.Item

	for _, items := range [][]models.Item{a, b} {
		for _, item := range items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			out = append(out, item)
		}
	}
	return out
}
