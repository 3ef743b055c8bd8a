package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/archlens/backend/internal/storage/models"
)

func (c *Client) InsertTeamMember(member *models.TeamMember) (int64, error) {
	result, err := c.exec(`INSERT INTO team_members (name, manager) VALUES (?, ?)`,
		member.Name, member.Manager)
	if err != nil {
		return 0, fmt.Errorf("failed to insert team member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read team member id: %w", err)
	}

	return id, nil
}

func (c *Client) UpdateTeamMember(member *models.TeamMember) error {
	result, err := c.exec(`UPDATE team_members SET name = ?, manager = ? WHERE id = ?`,
		member.Name, member.Manager, member.ID)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) DeleteTeamMember(id int64) error {
	result, err := c.exec(`DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) GetTeamMember(id int64) (*models.TeamMember, error) {
	var member models.TeamMember

	err := c.db.QueryRow(`SELECT id, name, manager FROM team_members WHERE id = ?`, id).
		Scan(&member.ID, &member.Name, &member.Manager)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return &member, nil
}

func (c *Client) ListTeamMembers() ([]models.TeamMember, error) {
	rows, err := c.db.Query(`SELECT id, name, manager FROM team_members ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var member models.TeamMember
		if err := rows.Scan(&member.ID, &member.Name, &member.Manager); err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}
