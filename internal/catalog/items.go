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

func (s *Service) CreateItem(item *models.Item) (*models.Item, error) {
	if _, err := s.store.GetLens(item.Lens); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, ErrUnknownLens
		}
		return nil, err
	}

	existing, err := s.store.GetItemByLensAndName(item.Lens, item.Name)
	if err != nil && !errors.Is(err, sqlite.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	id, err := s.store.InsertItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	item.ID = id

	logger.Info("Item created",
		zap.Int64("item_id", id),
		zap.String("lens", item.Lens),
		zap.String("name", item.Name),
	)
	return item, nil
}

func (s *Service) UpdateItem(item *models.Item) (*models.Item, error) {
	current, err := s.store.GetItem(item.ID)
	if err != nil {
		return nil, err
	}

	if item.Name != current.Name || item.Lens != current.Lens {
		existing, err := s.store.GetItemByLensAndName(item.Lens, item.Name)
		if err != nil && !errors.Is(err, sqlite.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, ErrDuplicateName
		}
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = time.Now()

	if err := s.store.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// DeleteItem removes only the item row. Relationships, task references and
// note references keep pointing at the dead id; every reader resolves ids
// with a resolve-or-skip rule, so the stale references are inert.
func (s *Service) DeleteItem(id int64) error {
	if err := s.store.DeleteItem(id); err != nil {
		return err
	}

	logger.Info("Item deleted", zap.Int64("item_id", id))
	return nil
}

func (s *Service) GetItem(id int64) (*models.Item, error) {
	return s.store.GetItem(id)
}

func (s *Service) ListItems(lens string) ([]models.Item, error) {
	if lens != "" {
		return s.store.ListItemsByLens(lens)
	}
	return s.store.ListItems()
}
