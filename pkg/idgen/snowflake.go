package idgen

import (
	"strconv"
	"sync"
	"time"
)

// ID is a 64-bit time-ordered identifier.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Config is the construction input of a Snowflake. It is never mutated after New.
type Config struct {
	NodeID      int64
	NodeBits    int
	CustomEpoch int64 // milliseconds since the Unix epoch
}

// DefaultConfig returns a Config with the default node width and epoch.
func DefaultConfig(nodeID int64) Config {
	return Config{
		NodeID:      nodeID,
		NodeBits:    DefaultNodeBits,
		CustomEpoch: DefaultCustomEpoch,
	}
}

// Option customizes a Snowflake.
type Option func(*Snowflake)

// WithClock sets the time source. A nil clock keeps SystemClock.
func WithClock(c Clock) Option {
	return func(s *Snowflake) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithWaitBackoff makes Next sleep d between clock samples while waiting out an
// exhausted millisecond instead of spinning. Zero restores spinning.
func WithWaitBackoff(d time.Duration) Option {
	return func(s *Snowflake) {
		if d >= 0 {
			s.waitBackoff = d
		}
	}
}

// Snowflake generates unique, strictly increasing 64-bit IDs.
type Snowflake struct {
	layout      Layout
	nodeID      int64
	epoch       int64
	clock       Clock
	waitBackoff time.Duration

	mu       sync.Mutex
	lastTime int64
	sequence int64
}

// New creates a new Snowflake ID generator. It fails with a *ConfigError when the
// node width or node ID is out of range.
func New(cfg Config, opts ...Option) (*Snowflake, error) {
	layout, err := NewLayout(cfg.NodeBits)
	if err != nil {
		return nil, err
	}

	if cfg.NodeID < 0 || cfg.NodeID > layout.MaxNodeID {
		return nil, &ConfigError{Field: "node_id", Value: cfg.NodeID, Err: ErrInvalidNodeID}
	}

	s := &Snowflake{
		layout:   layout,
		nodeID:   cfg.NodeID,
		epoch:    cfg.CustomEpoch,
		clock:    SystemClock{},
		lastTime: -1,
		sequence: 0,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Next generates the next unique ID.
func (s *Snowflake) Next() (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()

	if now < 0 || now > s.layout.MaxTimestamp {
		return 0, ErrTimestampOutOfRange
	}

	if now < s.lastTime {
		return 0, &ClockMovedBackError{Last: s.lastTime, Current: now}
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & s.layout.MaxSequence
		if s.sequence == 0 {
			// Sequence exhausted, wait for next millisecond
			now = s.waitNextMillis()
			if now > s.layout.MaxTimestamp {
				return 0, ErrTimestampOutOfRange
			}
		}
	} else {
		s.sequence = 0
	}

	s.lastTime = now

	return s.layout.compose(now, s.nodeID, s.sequence), nil
}

func (s *Snowflake) timestamp() int64 {
	return s.clock.Now() - s.epoch
}

func (s *Snowflake) waitNextMillis() int64 {
	now := s.timestamp()
	for now <= s.lastTime {
		if s.waitBackoff > 0 {
			time.Sleep(s.waitBackoff)
		}
		now = s.timestamp()
	}
	return now
}

// Layout returns the bit layout of this generator.
func (s *Snowflake) Layout() Layout {
	return s.layout
}

// NodeID returns the node identifier embedded in every ID.
func (s *Snowflake) NodeID() int64 {
	return s.nodeID
}

// CustomEpoch returns the epoch in milliseconds since the Unix epoch.
func (s *Snowflake) CustomEpoch() int64 {
	return s.epoch
}
