package catalog

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/pkg/logger"
)

func (s *Service) CreateTask(task *models.Task) (*models.Task, error) {
	if task.MeetingNoteID != nil {
		if _, err := s.store.GetMeetingNote(*task.MeetingNoteID); err != nil {
			return nil, fmt.Errorf("meeting note: %w", err)
		}
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	id, err := s.store.InsertTask(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.ID = id

	logger.Info("Task created", zap.Int64("task_id", id))
	return task, nil
}

func (s *Service) UpdateTask(task *models.Task) (*models.Task, error) {
	current, err := s.store.GetTask(task.ID)
	if err != nil {
		return nil, err
	}

	task.CreatedAt = current.CreatedAt
	task.CompletedAt = current.CompletedAt
	task.UpdatedAt = time.Now()

	if err := s.store.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleTaskComplete flips the completion timestamp: set when clear,
// cleared when set. There is no separate completion state machine.
func (s *Service) ToggleTaskComplete(id int64) (*models.Task, error) {
	task, err := s.store.GetTask(id)
	if err != nil {
		return nil, err
	}

	if task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.UpdatedAt = time.Now()

	if err := s.store.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task completion: %w", err)
	}

	return task, nil
}

func (s *Service) DeleteTask(id int64) error {
	return s.store.DeleteTask(id)
}

func (s *Service) GetTask(id int64) (*models.Task, error) {
	return s.store.GetTask(id)
}

func (s *Service) ListTasks() ([]models.Task, error) {
	return s.store.ListTasks()
}
