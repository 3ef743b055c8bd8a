package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archlens/backend/internal/storage/models"
)

const taskColumns = `id, description, assigned_to, item_references, meeting_note_id,
	completed_at, created_at, updated_at`

func (c *Client) InsertTask(task *models.Task) (int64, error) {
	refsJSON, _ := json.Marshal(task.ItemReferences)

	query := `
		INSERT INTO tasks (description, assigned_to, item_references, meeting_note_id,
			completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := c.exec(
		query,
		task.Description,
		task.AssignedTo,
		string(refsJSON),
		task.MeetingNoteID,
		unixOrNil(task.CompletedAt),
		task.CreatedAt.Unix(),
		task.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read task id: %w", err)
	}

	return id, nil
}

func (c *Client) UpdateTask(task *models.Task) error {
	refsJSON, _ := json.Marshal(task.ItemReferences)

	query := `
		UPDATE tasks SET description = ?, assigned_to = ?, item_references = ?,
			meeting_note_id = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := c.exec(
		query,
		task.Description,
		task.AssignedTo,
		string(refsJSON),
		task.MeetingNoteID,
		unixOrNil(task.CompletedAt),
		task.UpdatedAt.Unix(),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) DeleteTask(id int64) error {
	result, err := c.exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *Client) GetTask(id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(c.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (c *Client) ListTasks() ([]models.Task, error) {
	return c.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY id`)
}

func (c *Client) ListTasksForNote(noteID int64) ([]models.Task, error) {
	return c.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE meeting_note_id = ? ORDER BY id`, noteID)
}

func (c *Client) queryTasks(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var refsJSON string
	var noteID sql.NullInt64
	var completedAt sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(
		&task.ID,
		&task.Description,
		&task.AssignedTo,
		&refsJSON,
		&noteID,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(refsJSON), &task.ItemReferences)
	if noteID.Valid {
		task.MeetingNoteID = &noteID.Int64
	}
	if completedAt.Valid {
		t := time.Unix(completedAt.Int64, 0)
		task.CompletedAt = &t
	}
	task.CreatedAt = time.Unix(createdAt, 0)
	task.UpdatedAt = time.Unix(updatedAt, 0)

	return &task, nil
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}
