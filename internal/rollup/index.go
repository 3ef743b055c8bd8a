package rollup

import "github.com/archlens/backend/internal/storage/models"

// BuildIndex collects, for every primary-lens item, the relationship rows
// connecting it to a secondary-lens item. Mirror rows are written as two
// independent inserts and one side can be missing after a partial failure,
// so a single row must be found from either end: a row connects primary P
// to secondary S when (from=P, toLens=secondary) or (to=P, fromLens=secondary).
// Rows pointing at ids with no backing item are skipped. No lifecycle
// filtering happens here; that is the classifier's job.
func BuildIndex(snap Snapshot, primaryLens, secondaryLens string) Index {
	idx := Index{Links: make(map[int64][]Link)}

	if primaryLens == "" || secondaryLens == "" {
		return idx
	}

	byID := make(map[int64]models.Item, len(snap.Items))
	for _, item := range snap.Items {
		byID[item.ID] = item
	}

	for _, item := range snap.Items {
		if item.Lens == primaryLens {
			idx.Primaries = append(idx.Primaries, item)
		}
	}

	for _, rel := range snap.Relationships {
		if rel.ToLens == secondaryLens {
			if primary, ok := byID[rel.FromItemID]; ok && primary.Lens == primaryLens {
				if secondary, ok := byID[rel.ToItemID]; ok {
					idx.Links[primary.ID] = append(idx.Links[primary.ID], Link{Secondary: secondary, Rel: rel})
				}
			}
		}
		if rel.FromLens == secondaryLens {
			if primary, ok := byID[rel.ToItemID]; ok && primary.Lens == primaryLens {
				if secondary, ok := byID[rel.FromItemID]; ok {
					idx.Links[primary.ID] = append(idx.Links[primary.ID], Link{Secondary: secondary, Rel: rel})
				}
			}
		}
	}

	return idx
}

// connectedItems resolves the second roll-up hop: every rollupLens item
// connected to the given item by any relationship row, in either direction.
func connectedItems(snap Snapshot, byID map[int64]models.Item, itemID int64, rollupLens string) []models.Item {
	var out []models.Item
	seen := make(map[int64]bool)

	for _, rel := range snap.Relationships {
		var otherID int64 = -1
		switch {
		case rel.FromItemID == itemID && rel.ToLens == rollupLens:
			otherID = rel.ToItemID
		case rel.ToItemID == itemID && rel.FromLens == rollupLens:
			otherID = rel.FromItemID
		default:
			continue
		}

		other, ok := byID[otherID]
		if !ok || seen[otherID] {
			continue
		}
		seen[otherID] = true
		out = append(out, other)
	}

	return out
}
