package rollup

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/archlens/backend/internal/storage/models"
	"github.com/archlens/backend/pkg/logger"
)

// Engine runs the full index -> classify -> group pipeline over an
// immutable snapshot. It holds no state between runs; every invocation is
// a stateless recompute over the snapshot it is handed.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Run produces the Current/Target analysis for the selected lenses.
// Empty lens selections yield an empty result, not an error.
func (e *Engine) Run(snap Snapshot, opts Options) *Analysis {
	start := time.Now()
	runID := uuid.New().String()

	analysis := &Analysis{
		Options:            opts,
		SecondaryLensLabel: lensLabel(snap.Lenses, opts.SecondaryLens),
	}

	idx := BuildIndex(snap, opts.PrimaryLens, opts.SecondaryLens)

	byID := make(map[int64]models.Item, len(snap.Items))
	for _, item := range snap.Items {
		byID[item.ID] = item
	}

	for _, primary := range idx.Primaries {
		if opts.FilterItemID != 0 && primary.ID != opts.FilterItemID {
			continue
		}

		result := PrimaryResult{Primary: primary}
		result.Current, result.Target = classifyLinks(idx.Links[primary.ID])
		buildGroups(snap, byID, &result, opts)

		analysis.Results = append(analysis.Results, result)
	}

	logger.Debug("Roll-up analysis complete",
		zap.String("run_id", runID),
		zap.String("primary_lens", opts.PrimaryLens),
		zap.String("secondary_lens", opts.SecondaryLens),
		zap.String("rollup_mode", opts.RollupMode),
		zap.Int("primary_items", len(analysis.Results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return analysis
}

func lensLabel(lenses []models.Lens, key string) string {
	for _, lens := range lenses {
		if lens.Key == key {
			return lens.Label
		}
	}
	return key
}
