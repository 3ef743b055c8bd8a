package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archlens/backend/internal/storage/models"
)

const noteColumns = `id, title, participants, date_time, content, related_items,
	created_at, updated_at`

func (c *Client) InsertMeetingNote(note *models.MeetingNote) (int64, error) {
	itemsJSON, _ := json.Marshal(note.RelatedItems)

	query := `
		INSERT INTO meeting_notes (title, participants, date_time, content,
			related_items, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := c.exec(
		query,
		note.Title,
		note.Participants,
		note.DateTime.Unix(),
		note.Content,
		string(itemsJSON),
		note.CreatedAt.Unix(),
		note.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meeting note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meeting note id: %w", err)
	}

	return id, nil
}

func (c *Client) UpdateMeetingNote(note *models.MeetingNote) error {
	itemsJSON, _ := json.Marshal(note.RelatedItems)

	query := `
		UPDATE meeting_notes SET title = ?, participants = ?, date_time = ?,
			content = ?, related_items = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := c.exec(
		query,
		note.Title,
		note.Participants,
		note.DateTime.Unix(),
		note.Content,
		string(itemsJSON),
		note.UpdatedAt.Unix(),
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting note: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) DeleteMeetingNote(id int64) error {
	result, err := c.exec(`DELETE FROM meeting_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting note: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) GetMeetingNote(id int64) (*models.MeetingNote, error) {
	query := `SELECT ` + noteColumns + ` FROM meeting_notes WHERE id = ?`

	note, err := scanMeetingNote(c.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meeting note: %w", err)
	}

	return note, nil
}

func (c *Client) ListMeetingNotes() ([]models.MeetingNote, error) {
	query := `SELECT ` + noteColumns + ` FROM meeting_notes ORDER BY date_time DESC, id DESC`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting notes: %w", err)
	}
	defer rows.Close()

	var notes []models.MeetingNote
	for rows.Next() {
		note, err := scanMeetingNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting note row: %w", err)
		}
		notes = append(notes, *note)
	}

	return notes, rows.Err()
}

func scanMeetingNote(row rowScanner) (*models.MeetingNote, error) {
	var note models.MeetingNote
	var itemsJSON string
	var dateTime, createdAt, updatedAt int64

	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Participants,
		&dateTime,
		&note.Content,
		&itemsJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(itemsJSON), &note.RelatedItems)
	note.DateTime = time.Unix(dateTime, 0)
	note.CreatedAt = time.Unix(createdAt, 0)
	note.UpdatedAt = time.Unix(updatedAt, 0)

	return &note, nil
}
