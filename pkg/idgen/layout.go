package idgen

const (
	// ID layout, most significant bit first:
	// 1 bit: Unused (sign bit)
	// 41 bits: Timestamp offset from the custom epoch (milliseconds) - gives ~69 years
	// NodeBits bits: Node ID (1-16, default 10)
	// remaining bits: Sequence (6-21)

	UnusedBits  = 1
	EpochBits   = 41
	MinNodeBits = 1
	MaxNodeBits = 16

	DefaultNodeBits = 10

	// Custom Epoch (2023-12-12 UTC)
	DefaultCustomEpoch int64 = 1702385533000

	maxTimestamp = -1 ^ (-1 << EpochBits)
)

// Layout is the bit split of an ID for a given node width.
type Layout struct {
	NodeBits     int
	SequenceBits int
	MaxNodeID    int64
	MaxSequence  int64
	MaxTimestamp int64

	nodeShift      uint
	timestampShift uint
}

// NewLayout validates nodeBits and derives the remaining widths, masks and shifts.
func NewLayout(nodeBits int) (Layout, error) {
	if nodeBits < MinNodeBits || nodeBits > MaxNodeBits {
		return Layout{}, &ConfigError{Field: "node_bits", Value: int64(nodeBits), Err: ErrInvalidNodeBits}
	}

	sequenceBits := 64 - UnusedBits - EpochBits - nodeBits

	return Layout{
		NodeBits:       nodeBits,
		SequenceBits:   sequenceBits,
		MaxNodeID:      int64(1)<<nodeBits - 1,
		MaxSequence:    int64(1)<<sequenceBits - 1,
		MaxTimestamp:   maxTimestamp,
		nodeShift:      uint(sequenceBits),
		timestampShift: uint(sequenceBits + nodeBits),
	}, nil
}

func (l Layout) compose(offset, nodeID, sequence int64) ID {
	return ID(uint64(offset)<<l.timestampShift |
		uint64(nodeID)<<l.nodeShift |
		uint64(sequence))
}

func (l Layout) decompose(id ID) (offset, nodeID, sequence int64) {
	v := uint64(id)
	sequence = int64(v & uint64(l.MaxSequence))
	nodeID = int64((v >> l.nodeShift) & uint64(l.MaxNodeID))
	offset = int64(v >> l.timestampShift)
	return offset, nodeID, sequence
}
