package catalog

import (
	"errors"

	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/internal/storage/sqlite"
)

var (
	// ErrDuplicateName means an item with the same name already exists in
	// the target lens.
	ErrDuplicateName = errors.New("name already exists in lens")

	// ErrDuplicateKey means a lens with the same key already exists.
	ErrDuplicateKey = errors.New("lens key already exists")

	// ErrUnknownLens means a referenced lens key does not exist.
	ErrUnknownLens = errors.New("unknown lens")
)

// Service implements the application conventions the record store does not
// enforce: relationship mirroring, lens cascade deletes, duplicate-name
// rejection, the task complete toggle and the team coverage report.
type Service struct {
	store *sqlite.Client
}

func NewService(store *sqlite.Client) *Service {
	return &Service{store: store}
}

// Snapshot loads the full item, relationship and lens collections for one
// engine run. Every analysis reloads from the store; there is no
// incremental update path.
func (s *Service) Snapshot() (rollup.Snapshot, error) {
	items, err := s.store.ListItems()
	if err != nil {
		return rollup.Snapshot{}, err
	}

	rels, err := s.store.ListRelationships()
	if err != nil {
		return rollup.Snapshot{}, err
	}

	lenses, err := s.store.ListLenses()
	if err != nil {
		return rollup.Snapshot{}, err
	}

	return rollup.Snapshot{Items: items, Relationships: rels, Lenses: lenses}, nil
}
