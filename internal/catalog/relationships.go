package catalog

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/internal/storage/sqlite"
	"github.com/archlens/backend/pkg/logger"
)

// AddRelationship creates both rows of a logical edge: the requested
// direction and its mirror with from/to and role labels swapped. The two
// inserts are sequential and non-transactional; a failure between them
// leaves a one-sided edge, which every reader tolerates.
func (s *Service) AddRelationship(fromItemID, toItemID int64, relType, lifecycleStatus, note string) (*models.Relationship, error) {
	from, err := s.store.GetItem(fromItemID)
	if err != nil {
		return nil, fmt.Errorf("from item: %w", err)
	}
	to, err := s.store.GetItem(toItemID)
	if err != nil {
		return nil, fmt.Errorf("to item: %w", err)
	}

	fromRole, toRole := models.RoleLabels(relType)
	now := time.Now()

	forward := &models.Relationship{
		FromItemID:       from.ID,
		ToItemID:         to.ID,
		FromLens:         from.Lens,
		ToLens:           to.Lens,
		RelationshipType: relType,
		FromRole:         fromRole,
		ToRole:           toRole,
		LifecycleStatus:  lifecycleStatus,
		Note:             note,
		CreatedAt:        now,
	}

	id, err := s.store.InsertRelationship(forward)
	if err != nil {
		return nil, fmt.Errorf("failed to add relationship: %w", err)
	}
	forward.ID = id

	mirror := &models.Relationship{
		FromItemID:       to.ID,
		ToItemID:         from.ID,
		FromLens:         to.Lens,
		ToLens:           from.Lens,
		RelationshipType: relType,
		FromRole:         toRole,
		ToRole:           fromRole,
		LifecycleStatus:  lifecycleStatus,
		Note:             note,
		CreatedAt:        now,
	}

	if _, err := s.store.InsertRelationship(mirror); err != nil {
		logger.Warn("Mirror row insert failed, edge is one-sided",
			zap.Int64("relationship_id", forward.ID),
			zap.Error(err),
		)
	}

	logger.Info("Relationship added",
		zap.Int64("relationship_id", forward.ID),
		zap.Int64("from_item_id", from.ID),
		zap.Int64("to_item_id", to.ID),
		zap.String("type", relType),
	)
	return forward, nil
}

// UpdateRelationship applies type, role, lifecycle and note edits to a row
// and propagates them to its mirror. When the mirror is missing the edit
// applies to the surviving side only.
func (s *Service) UpdateRelationship(id int64, relType, lifecycleStatus, note string) (*models.Relationship, error) {
	rel, err := s.store.GetRelationship(id)
	if err != nil {
		return nil, err
	}

	fromRole, toRole := models.RoleLabels(relType)
	rel.RelationshipType = relType
	rel.FromRole = fromRole
	rel.ToRole = toRole
	rel.LifecycleStatus = lifecycleStatus
	rel.Note = note

	if err := s.store.UpdateRelationship(rel); err != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", err)
	}

	mirror, err := s.findMirror(rel)
	if err != nil {
		return nil, err
	}
	if mirror == nil {
		logger.Debug("No mirror row for relationship edit", zap.Int64("relationship_id", id))
		return rel, nil
	}

	mirror.RelationshipType = relType
	mirror.FromRole = toRole
	mirror.ToRole = fromRole
	mirror.LifecycleStatus = lifecycleStatus
	mirror.Note = note

	if err := s.store.UpdateRelationship(mirror); err != nil {
		logger.Warn("Mirror row edit failed",
			zap.Int64("relationship_id", id),
			zap.Int64("mirror_id", mirror.ID),
			zap.Error(err),
		)
	}

	return rel, nil
}

// RemoveRelationship deletes a row and its mirror when one exists.
func (s *Service) RemoveRelationship(id int64) error {
	rel, err := s.store.GetRelationship(id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRelationship(id); err != nil {
		return err
	}

	mirror, err := s.findMirror(rel)
	if err != nil {
		return err
	}
	if mirror != nil {
		if err := s.store.DeleteRelationship(mirror.ID); err != nil && !errors.Is(err, sqlite.ErrNotFound) {
			logger.Warn("Mirror row delete failed",
				zap.Int64("relationship_id", id),
				zap.Int64("mirror_id", mirror.ID),
				zap.Error(err),
			)
		}
	}

	logger.Info("Relationship removed", zap.Int64("relationship_id", id))
	return nil
}

func (s *Service) GetRelationship(id int64) (*models.Relationship, error) {
	return s.store.GetRelationship(id)
}

func (s *Service) ListRelationships(itemID int64) ([]models.Relationship, error) {
	if itemID != 0 {
		return s.store.ListRelationshipsForItem(itemID)
	}
	return s.store.ListRelationships()
}

// findMirror locates the reverse row of a logical edge: same endpoints,
// opposite direction. With several candidates the oldest row wins.
func (s *Service) findMirror(rel *models.Relationship) (*models.Relationship, error) {
	candidates, err := s.store.ListRelationshipsBetween(rel.ToItemID, rel.FromItemID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}
