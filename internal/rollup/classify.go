package rollup

import (
	"sort"

	"github.com/archlens/backend/internal/storage/models"
)

// Membership says which buckets a related item lands in for one
// connecting relationship.
type Membership struct {
	Current bool
	Target  bool
}

type policyKey struct {
	ItemStatus string
	RelStatus  string
}

// policy enumerates the full item-status x relationship-status space.
// Relationship status is normalized first (unset means Existing), so the
// table covers 6 item statuses x 3 relationship statuses.
//
// Current: excluded when the relationship is "Planned to add"; otherwise
// included for Invest, Divest, Stable and unset item statuses.
// Target: excluded when the relationship is "Planned to remove" or the
// item is Divest; otherwise included.
var policy = map[policyKey]Membership{
	{"", models.RelStatusExisting}:        {Current: true, Target: true},
	{"", models.RelStatusPlannedToAdd}:    {Current: false, Target: true},
	{"", models.RelStatusPlannedToRemove}: {Current: true, Target: false},

	{models.StatusPlan, models.RelStatusExisting}:        {Current: false, Target: true},
	{models.StatusPlan, models.RelStatusPlannedToAdd}:    {Current: false, Target: true},
	{models.StatusPlan, models.RelStatusPlannedToRemove}: {Current: false, Target: false},

	{models.StatusEmerging, models.RelStatusExisting}:        {Current: false, Target: true},
	{models.StatusEmerging, models.RelStatusPlannedToAdd}:    {Current: false, Target: true},
	{models.StatusEmerging, models.RelStatusPlannedToRemove}: {Current: false, Target: false},

	{models.StatusInvest, models.RelStatusExisting}:        {Current: true, Target: true},
	{models.StatusInvest, models.RelStatusPlannedToAdd}:    {Current: false, Target: true},
	{models.StatusInvest, models.RelStatusPlannedToRemove}: {Current: true, Target: false},

	{models.StatusDivest, models.RelStatusExisting}:        {Current: true, Target: false},
	{models.StatusDivest, models.RelStatusPlannedToAdd}:    {Current: false, Target: false},
	{models.StatusDivest, models.RelStatusPlannedToRemove}: {Current: true, Target: false},

	{models.StatusStable, models.RelStatusExisting}:        {Current: true, Target: true},
	{models.StatusStable, models.RelStatusPlannedToAdd}:    {Current: false, Target: true},
	{models.StatusStable, models.RelStatusPlannedToRemove}: {Current: true, Target: false},
}

// Classify returns bucket membership for one (item status, relationship
// status) pair. Unknown statuses classify as their unset equivalents.
func Classify(itemStatus, relStatus string) Membership {
	if relStatus == "" {
		relStatus = models.RelStatusExisting
	}

	if m, ok := policy[policyKey{itemStatus, relStatus}]; ok {
		return m
	}
	if m, ok := policy[policyKey{"", relStatus}]; ok {
		return m
	}
	return policy[policyKey{"", models.RelStatusExisting}]
}

// classifyLinks buckets the secondary items connected to one primary item.
// An item reached through several relationships appears at most once per
// bucket and is included when any connecting relationship includes it.
// Buckets are stable-sorted by name, ties kept in link order.
func classifyLinks(links []Link) (current, target []models.Item) {
	inCurrent := make(map[int64]bool)
	inTarget := make(map[int64]bool)

	for _, link := range links {
		m := Classify(link.Secondary.LifecycleStatus, link.Rel.EffectiveStatus())

		if m.Current && !inCurrent[link.Secondary.ID] {
			inCurrent[link.Secondary.ID] = true
			current = append(current, link.Secondary)
		}
		if m.Target && !inTarget[link.Secondary.ID] {
			inTarget[link.Secondary.ID] = true
			target = append(target, link.Secondary)
		}
	}

	sortItemsByName(current)
	sortItemsByName(target)
	return current, target
}

func sortItemsByName(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
}
