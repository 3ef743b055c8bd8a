package catalog

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/internal/storage/sqlite"
	"github.com/archlens/backend/pkg/logger"
)

func (s *Service) CreateLens(lens *models.Lens) (*models.Lens, error) {
	existing, err := s.store.GetLens(lens.Key)
	if err != nil && !errors.Is(err, sqlite.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateKey
	}

	if err := s.store.InsertLens(lens); err != nil {
		return nil, fmt.Errorf("failed to create lens: %w", err)
	}

	logger.Info("Lens created", zap.String("lens", lens.Key))
	return lens, nil
}

func (s *Service) UpdateLens(lens *models.Lens) (*models.Lens, error) {
	if err := s.store.UpdateLens(lens); err != nil {
		return nil, err
	}
	return lens, nil
}

// DeleteLens cascades: the lens's items and every relationship referencing
// the lens on either side go with it. Item deletion elsewhere does NOT
// cascade; the asymmetry is inherited behavior and is kept on purpose.
func (s *Service) DeleteLens(key string) error {
	if _, err := s.store.GetLens(key); err != nil {
		return err
	}

	if err := s.store.DeleteRelationshipsByLens(key); err != nil {
		return err
	}
	if err := s.store.DeleteItemsByLens(key); err != nil {
		return err
	}
	if err := s.store.DeleteLens(key); err != nil {
		return err
	}

	logger.Info("Lens deleted with cascade", zap.String("lens", key))
	return nil
}

func (s *Service) GetLens(key string) (*models.Lens, error) {
	return s.store.GetLens(key)
}

func (s *Service) ListLenses() ([]models.Lens, error) {
	return s.store.ListLenses()
}
