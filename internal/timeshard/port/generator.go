package port

import (
	"github.com/anthanhphan/timeshard/pkg/gossip"
	"github.com/anthanhphan/timeshard/pkg/idgen"
)

//go:generate mockgen -destination=../service/mocks/generator_mock.go -package=mocks -source=generator.go

// Generator issues and decodes IDs. *idgen.Snowflake satisfies it.
type Generator interface {
	// Next returns a fresh ID, or an error if the clock moved backwards.
	Next() (idgen.ID, error)

	// Parse decodes an ID into its components.
	Parse(id idgen.ID) idgen.Components

	// Info reports the generator's bit layout and capacity.
	Info() idgen.Info
}

// ConflictReporter reports peers that advertise the local node ID.
type ConflictReporter interface {
	Conflicts() []gossip.Conflict
}
