package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/pkg/logger"
)

const relationshipColumns = `id, from_item_id, to_item_id, from_lens, to_lens,
	relationship_type, from_role, to_role, lifecycle_status, note, created_at`

func (c *Client) InsertRelationship(rel *models.Relationship) (int64, error) {
	query := `
		INSERT INTO relationships (from_item_id, to_item_id, from_lens, to_lens,
			relationship_type, from_role, to_role, lifecycle_status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := c.exec(
		query,
		rel.FromItemID,
		rel.ToItemID,
		rel.FromLens,
		rel.ToLens,
		rel.RelationshipType,
		rel.FromRole,
		rel.ToRole,
		rel.LifecycleStatus,
		rel.Note,
		rel.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert relationship: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read relationship id: %w", err)
	}

	logger.Debug("Relationship inserted",
		zap.Int64("relationship_id", id),
		zap.Int64("from_item_id", rel.FromItemID),
		zap.Int64("to_item_id", rel.ToItemID),
	)
	return id, nil
}

func (c *Client) UpdateRelationship(rel *models.Relationship) error {
	query := `
		UPDATE relationships SET relationship_type = ?, from_role = ?, to_role = ?,
			lifecycle_status = ?, note = ?
		WHERE id = ?
	`

	result, err := c.exec(
		query,
		rel.RelationshipType,
		rel.FromRole,
		rel.ToRole,
		rel.LifecycleStatus,
		rel.Note,
		rel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update relationship: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) DeleteRelationship(id int64) error {
	result, err := c.exec(`DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) GetRelationship(id int64) (*models.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE id = ?`

	rel, err := scanRelationship(c.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}

	return rel, nil
}

func (c *Client) ListRelationships() ([]models.Relationship, error) {
	return c.queryRelationships(`SELECT ` + relationshipColumns + ` FROM relationships ORDER BY id`)
}

// ListRelationshipsForItem returns rows touching the item in either
// direction. Mirror rows may be missing, so both columns are checked.
func (c *Client) ListRelationshipsForItem(itemID int64) ([]models.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships
		WHERE from_item_id = ? OR to_item_id = ? ORDER BY id`
	return c.queryRelationships(query, itemID, itemID)
}

// ListRelationshipsBetween returns rows pointing from one item to another,
// in that direction only.
func (c *Client) ListRelationshipsBetween(fromItemID, toItemID int64) ([]models.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships
		WHERE from_item_id = ? AND to_item_id = ? ORDER BY id`
	return c.queryRelationships(query, fromItemID, toItemID)
}

func (c *Client) DeleteRelationshipsByLens(lens string) error {
	_, err := c.exec(`DELETE FROM relationships WHERE from_lens = ? OR to_lens = ?`, lens, lens)
	if err != nil {
		return fmt.Errorf("failed to delete relationships for lens: %w", err)
	}
	return nil
}

func (c *Client) CountRelationships() (int64, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM relationships`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count relationships: %w", err)
	}
	return count, nil
}

func (c *Client) queryRelationships(query string, args ...interface{}) ([]models.Relationship, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var rels []models.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		rels = append(rels, *rel)
	}

	return rels, rows.Err()
}

func scanRelationship(row rowScanner) (*models.Relationship, error) {
	var rel models.Relationship
	var createdAt int64

	err := row.Scan(
		&rel.ID,
		&rel.FromItemID,
		&rel.ToItemID,
		&rel.FromLens,
		&rel.ToLens,
		&rel.RelationshipType,
		&rel.FromRole,
		&rel.ToRole,
		&rel.LifecycleStatus,
		&rel.Note,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rel.CreatedAt = time.Unix(createdAt, 0)
	return &rel, nil
}
