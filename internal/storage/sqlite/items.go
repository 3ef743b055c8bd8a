package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/pkg/logger"
)

const itemColumns = `id, lens, name, description, lifecycle_status, parent, tags,
	primary_architect, secondary_architects, business_contact, tech_contact,
	architecture_manager, hyperlinks, skills_gaps, created_at, updated_at`

func (c *Client) InsertItem(item *models.Item) (int64, error) {
	tagsJSON, _ := json.Marshal(item.Tags)
	architectsJSON, _ := json.Marshal(item.SecondaryArchitects)
	linksJSON, _ := json.Marshal(item.Hyperlinks)

	query := `
		INSERT INTO items (lens, name, description, lifecycle_status, parent, tags,
			primary_architect, secondary_architects, business_contact, tech_contact,
			architecture_manager, hyperlinks, skills_gaps, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := c.exec(
		query,
		item.Lens,
		item.Name,
		item.Description,
		item.LifecycleStatus,
		item.Parent,
		string(tagsJSON),
		item.PrimaryArchitect,
		string(architectsJSON),
		item.BusinessContact,
		item.TechContact,
		item.ArchitectureManager,
		string(linksJSON),
		item.SkillsGaps,
		item.CreatedAt.Unix(),
		item.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read item id: %w", err)
	}

	logger.Debug("Item inserted", zap.Int64("item_id", id), zap.String("lens", item.Lens), zap.String("name", item.Name))
	return id, nil
}

func (c *Client) UpdateItem(item *models.Item) error {
	tagsJSON, _ := json.Marshal(item.Tags)
	architectsJSON, _ := json.Marshal(item.SecondaryArchitects)
	linksJSON, _ := json.Marshal(item.Hyperlinks)

	query := `
		UPDATE items SET lens = ?, name = ?, description = ?, lifecycle_status = ?,
			parent = ?, tags = ?, primary_architect = ?, secondary_architects = ?,
			business_contact = ?, tech_contact = ?, architecture_manager = ?,
			hyperlinks = ?, skills_gaps = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := c.exec(
		query,
		item.Lens,
		item.Name,
		item.Description,
		item.LifecycleStatus,
		item.Parent,
		string(tagsJSON),
		item.PrimaryArchitect,
		string(architectsJSON),
		item.BusinessContact,
		item.TechContact,
		item.ArchitectureManager,
		string(linksJSON),
		item.SkillsGaps,
		item.UpdatedAt.Unix(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteItem removes only the item row. Relationships, task references and
// note references pointing at the id are left in place; readers resolve
// dangling ids with a resolve-or-skip rule.
func (c *Client) DeleteItem(id int64) error {
	result, err := c.exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	logger.Debug("Item deleted", zap.Int64("item_id", id))
	return nil
}

func (c *Client) GetItem(id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(c.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (c *Client) GetItemByLensAndName(lens, name string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lens = ? AND name = ?`

	item, err := scanItem(c.db.QueryRow(query, lens, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}

	return item, nil
}

func (c *Client) ListItems() ([]models.Item, error) {
	return c.queryItems(`SELECT ` + itemColumns + ` FROM items ORDER BY id`)
}

func (c *Client) ListItemsByLens(lens string) ([]models.Item, error) {
	return c.queryItems(`SELECT `+itemColumns+` FROM items WHERE lens = ? ORDER BY id`, lens)
}

func (c *Client) DeleteItemsByLens(lens string) error {
	_, err := c.exec(`DELETE FROM items WHERE lens = ?`, lens)
	if err != nil {
		return fmt.Errorf("failed to delete items for lens: %w", err)
	}
	return nil
}

func (c *Client) CountItems() (int64, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (c *Client) queryItems(query string, args ...interface{}) ([]models.Item, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var tagsJSON, architectsJSON, linksJSON string
	var createdAt, updatedAt int64

	err := row.Scan(
		&item.ID,
		&item.Lens,
		&item.Name,
		&item.Description,
		&item.LifecycleStatus,
		&item.Parent,
		&tagsJSON,
		&item.PrimaryArchitect,
		&architectsJSON,
		&item.BusinessContact,
		&item.TechContact,
		&item.ArchitectureManager,
		&linksJSON,
		&item.SkillsGaps,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(tagsJSON), &item.Tags)
	json.Unmarshal([]byte(architectsJSON), &item.SecondaryArchitects)
	json.Unmarshal([]byte(linksJSON), &item.Hyperlinks)
	item.CreatedAt = time.Unix(createdAt, 0)
	item.UpdatedAt = time.Unix(updatedAt, 0)

	return &item, nil
}
