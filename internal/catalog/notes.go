package catalog

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/pkg/logger"
)

func (s *Service) CreateMeetingNote(note *models.MeetingNote) (*models.MeetingNote, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.DateTime.IsZero() {
		note.DateTime = now
	}

	id, err := s.store.InsertMeetingNote(note)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting note: %w", err)
	}
	note.ID = id

	logger.Info("Meeting note created", zap.Int64("note_id", id), zap.String("title", note.Title))
	return note, nil
}

func (s *Service) UpdateMeetingNote(note *models.MeetingNote) (*models.MeetingNote, error) {
	current, err := s.store.GetMeetingNote(note.ID)
	if err != nil {
		return nil, err
	}

	note.CreatedAt = current.CreatedAt
	note.UpdatedAt = time.Now()

	if err := s.store.UpdateMeetingNote(note); err != nil {
		return nil, fmt.Errorf("failed to update meeting note: %w", err)
	}

	return note, nil
}

// DeleteMeetingNote removes the note only. Tasks created from the note
// keep their meeting_note_id; readers skip the dangling reference.
func (s *Service) DeleteMeetingNote(id int64) error {
	return s.store.DeleteMeetingNote(id)
}

func (s *Service) GetMeetingNote(id int64) (*models.MeetingNote, error) {
	return s.store.GetMeetingNote(id)
}

func (s *Service) ListMeetingNotes() ([]models.MeetingNote, error) {
	return s.store.ListMeetingNotes()
}

// CreateTaskFromNote creates a task pre-linked to a meeting note,
// inheriting the note's related items as the task's item references.
func (s *Service) CreateTaskFromNote(noteID int64, description, assignedTo string) (*models.Task, error) {
	note, err := s.store.GetMeetingNote(noteID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Description:    description,
		AssignedTo:     assignedTo,
		ItemReferences: note.RelatedItems,
		MeetingNoteID:  &note.ID,
	}

	return s.CreateTask(task)
}
