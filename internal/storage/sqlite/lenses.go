package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/archlens/backend/internal/storage/models"
)

func (c *Client) InsertLens(lens *models.Lens) error {
	query := `INSERT INTO lenses (key, label, sort_order) VALUES (?, ?, ?)`

	_, err := c.exec(query, lens.Key, lens.Label, lens.Order)
	if err != nil {
		return fmt.Errorf("failed to insert lens: %w", err)
	}

	return nil
}

func (c *Client) UpdateLens(lens *models.Lens) error {
	result, err := c.exec(`UPDATE lenses SET label = ?, sort_order = ? WHERE key = ?`,
		lens.Label, lens.Order, lens.Key)
	if err != nil {
		return fmt.Errorf("failed to update lens: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) DeleteLens(key string) error {
	result, err := c.exec(`DELETE FROM lenses WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete lens: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) GetLens(key string) (*models.Lens, error) {
	var lens models.Lens

	err := c.db.QueryRow(`SELECT key, label, sort_order FROM lenses WHERE key = ?`, key).
		Scan(&lens.Key, &lens.Label, &lens.Order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lens: %w", err)
	}

	return &lens, nil
}

func (c *Client) ListLenses() ([]models.Lens, error) {
	rows, err := c.db.Query(`SELECT key, label, sort_order FROM lenses ORDER BY sort_order, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lenses: %w", err)
	}
	defer rows.Close()

	var lenses []models.Lens
	for rows.Next() {
		var lens models.Lens
		if err := rows.Scan(&lens.Key, &lens.Label, &lens.Order); err != nil {
			return nil, fmt.Errorf("failed to scan lens row: %w", err)
		}
		lenses = append(lenses, lens)
	}

	return lenses, rows.Err()
}
