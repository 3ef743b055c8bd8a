package catalog

import (
	"fmt"
	"sort"

	"github.com/archlens/backend/internal/storage/models"
)

// CoverageRow is one team member's slice of the coverage report.
type CoverageRow struct {
	Name    string `json:"name"`
	Manager string `json:"manager,omitempty"`

	// OwnItems counts items naming the member as primary or secondary
	// architect. RolledUpItems adds the counts of everyone below them in
	// the management chain.
	OwnItems      int `json:"own_items"`
	RolledUpItems int `json:"rolled_up_items"`
}

func (s *Service) CreateTeamMember(member *models.TeamMember) (*models.TeamMember, error) {
	id, err := s.store.InsertTeamMember(member)
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	member.ID = id
	return member, nil
}

func (s *Service) UpdateTeamMember(member *models.TeamMember) (*models.TeamMember, error) {
	if err := s.store.UpdateTeamMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) DeleteTeamMember(id int64) error {
	return s.store.DeleteTeamMember(id)
}

func (s *Service) ListTeamMembers() ([]models.TeamMember, error) {
	return s.store.ListTeamMembers()
}

// CoverageReport tallies, per team member, the items they architect and
// the roll-up across everyone who reports to them transitively. Manager
// references are free-text names; a name matching no member simply roots
// its own subtree. Traversal marks visited members so a cyclic manager
// chain cannot loop.
func (s *Service) CoverageReport() ([]CoverageRow, error) {
	members, err := s.store.ListTeamMembers()
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListItems()
	if err != nil {
		return nil, err
	}

	own := make(map[string]int, len(members))
	for _, item := range items {
		if item.PrimaryArchitect != "" {
			own[item.PrimaryArchitect]++
		}
		for _, name := range item.SecondaryArchitects {
			own[name]++
		}
	}

	reports := make(map[string][]string)
	for _, member := range members {
		if member.Manager != "" {
			reports[member.Manager] = append(reports[member.Manager], member.Name)
		}
	}

	rows := make([]CoverageRow, 0, len(members))
	for _, member := range members {
		visited := make(map[string]bool)
		rows = append(rows, CoverageRow{
			Name:          member.Name,
			Manager:       member.Manager,
			OwnItems:      own[member.Name],
			RolledUpItems: subtreeCount(member.Name, own, reports, visited),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func subtreeCount(name string, own map[string]int, reports map[string][]string, visited map[string]bool) int {
	if visited[name] {
		return 0
	}
	visited[name] = true

	total := own[name]
	for _, report := range reports[name] {
		total += subtreeCount(report, own, reports, visited)
	}
	return total
}
