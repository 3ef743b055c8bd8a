package models

import "time"

// Item lifecycle statuses. An empty string means no status was set.
const (
	StatusPlan     = "Plan"
	StatusEmerging = "Emerging"
	StatusInvest   = "Invest"
	StatusDivest   = "Divest"
	StatusStable   = "Stable"
)

// Relationship lifecycle statuses. An empty string is treated as Existing.
const (
	RelStatusPlannedToAdd    = "Planned to add"
	RelStatusPlannedToRemove = "Planned to remove"
	RelStatusExisting        = "Existing"
)

// Relationship types with their per-side role labels.
const (
	RelTypeParentChild      = "Parent-Child"
	RelTypeReplaces         = "Replaces-Replaced By"
	RelTypeEnablesDependsOn = "Enables-Depends On"
	RelTypeDefault          = "Default"
)

// ItemStatuses lists every item lifecycle status plus unset, in display order.
var ItemStatuses = []string{"", StatusPlan, StatusEmerging, StatusInvest, StatusDivest, StatusStable}

// RelStatuses lists every relationship lifecycle status plus unset.
var RelStatuses = []string{"", RelStatusPlannedToAdd, RelStatusPlannedToRemove, RelStatusExisting}

type Hyperlink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Item struct {
	ID                  int64       `json:"id"`
	Lens                string      `json:"lens"`
	Name                string      `json:"name"`
	Description         string      `json:"description,omitempty"`
	LifecycleStatus     string      `json:"lifecycle_status,omitempty"`
	Parent              string      `json:"parent,omitempty"`
	Tags                []string    `json:"tags,omitempty"`
	PrimaryArchitect    string      `json:"primary_architect,omitempty"`
	SecondaryArchitects []string    `json:"secondary_architects,omitempty"`
	BusinessContact     string      `json:"business_contact,omitempty"`
	TechContact         string      `json:"tech_contact,omitempty"`
	ArchitectureManager string      `json:"architecture_manager,omitempty"`
	Hyperlinks          []Hyperlink `json:"hyperlinks,omitempty"`
	SkillsGaps          string      `json:"skills_gaps,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type Relationship struct {
	ID               int64     `json:"id"`
	FromItemID       int64     `json:"from_item_id"`
	ToItemID         int64     `json:"to_item_id"`
	FromLens         string    `json:"from_lens"`
	ToLens           string    `json:"to_lens"`
	RelationshipType string    `json:"relationship_type,omitempty"`
	FromRole         string    `json:"from_role,omitempty"`
	ToRole           string    `json:"to_role,omitempty"`
	LifecycleStatus  string    `json:"lifecycle_status,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// EffectiveStatus returns the relationship lifecycle status with the
// unset value normalized to Existing.
func (r Relationship) EffectiveStatus() string {
	if r.LifecycleStatus == "" {
		return RelStatusExisting
	}
	return r.LifecycleStatus
}

type Lens struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

type Task struct {
	ID             int64      `json:"id"`
	Description    string     `json:"description"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	ItemReferences []int64    `json:"item_references,omitempty"`
	MeetingNoteID  *int64     `json:"meeting_note_id,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MeetingNote struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Participants string    `json:"participants,omitempty"`
	DateTime     time.Time `json:"date_time"`
	Content      string    `json:"content,omitempty"`
	RelatedItems []int64   `json:"related_items,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TeamMember struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Manager string `json:"manager,omitempty"`
}

// RoleLabels returns the from/to role labels implied by a relationship type.
func RoleLabels(relType string) (fromRole, toRole string) {
	switch relType {
	case RelTypeParentChild:
		return "Parent", "Child"
	case RelTypeReplaces:
		return "Replaces", "Replaced By"
	case RelTypeEnablesDependsOn:
		return "Enables", "Depends On"
	default:
		return "", ""
	}
}
