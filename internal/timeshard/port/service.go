package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/timeshard/pkg/idgen"
)

//go:generate mockgen -destination=./mocks/service_mock.go -package=mocks -source=service.go

var (
	ErrInvalidCount   = errors.New("invalid ID count")
	ErrNodeIDConflict = errors.New("node ID conflict with a peer")
)

// Health is the service's self-report.
type Health struct {
	NodeID    int64    `json:"node_id"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// IDService defines the business logic exposed by the transports.
type IDService interface {
	// NextID issues a single ID.
	NextID(ctx context.Context) (idgen.ID, error)

	// NextIDs issues count strictly increasing IDs.
	NextIDs(ctx context.Context, count int) ([]idgen.ID, error)

	// NextPrefixed issues an ID rendered with prefix inserted at position;
	// a negative position prepends.
	NextPrefixed(ctx context.Context, prefix string, position int) (string, error)

	// Parse decodes an ID.
	Parse(ctx context.Context, id idgen.ID) idgen.Components

	// Info reports the generator configuration.
	Info(ctx context.Context) idgen.Info

	// Health reports node ID conflicts; it returns ErrNodeIDConflict alongside the report
	// when any peer shares the local node ID.
	Health(ctx context.Context) (Health, error)
}
