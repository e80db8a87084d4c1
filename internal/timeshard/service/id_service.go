package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/timeshard/internal/timeshard/port"
	"github.com/anthanhphan/timeshard/pkg/idgen"
)

// IDServiceImpl implements port.IDService on top of a single generator.
type IDServiceImpl struct {
	gen       port.Generator
	conflicts port.ConflictReporter
	maxBatch  int
}

// NewIDService creates the ID service. conflicts may be nil when gossip is disabled.
func NewIDService(gen port.Generator, conflicts port.ConflictReporter, maxBatch int) *IDServiceImpl {
	if maxBatch <= 0 {
		maxBatch = 1
	}
	return &IDServiceImpl{
		gen:       gen,
		conflicts: conflicts,
		maxBatch:  maxBatch,
	}
}

var _ port.IDService = (*IDServiceImpl)(nil)

func (s *IDServiceImpl) NextID(ctx context.Context) (idgen.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, err := s.gen.Next()
	if err != nil {
		logger.Errorw("ID generation failed", "error", err.Error())
		return 0, fmt.Errorf("failed to generate ID: %w", err)
	}
	return id, nil
}

func (s *IDServiceImpl) NextIDs(ctx context.Context, count int) ([]idgen.ID, error) {
	if count <= 0 || count > s.maxBatch {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", port.ErrInvalidCount, count, s.maxBatch)
	}

	ids := make([]idgen.ID, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := s.gen.Next()
		if err != nil {
			logger.Errorw("Batch ID generation failed", "issued", i, "requested", count, "error", err.Error())
			return nil, fmt.Errorf("failed to generate ID %d of %d: %w", i+1, count, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *IDServiceImpl) NextPrefixed(ctx context.Context, prefix string, position int) (string, error) {
	id, err := s.NextID(ctx)
	if err != nil {
		return "", err
	}
	if position < 0 {
		return idgen.FormatWithPrefix(id, prefix), nil
	}
	return idgen.FormatWithPrefixAt(id, prefix, position)
}

func (s *IDServiceImpl) Parse(_ context.Context, id idgen.ID) idgen.Components {
	return s.gen.Parse(id)
}

func (s *IDServiceImpl) Info(_ context.Context) idgen.Info {
	return s.gen.Info()
}

func (s *IDServiceImpl) Health(_ context.Context) (port.Health, error) {
	h := port.Health{NodeID: s.gen.Info().NodeID}
	if s.conflicts == nil {
		return h, nil
	}

	for _, c := range s.conflicts.Conflicts() {
		h.Conflicts = append(h.Conflicts, c.Member)
	}
	if len(h.Conflicts) > 0 {
		return h, port.ErrNodeIDConflict
	}
	return h, nil
}
