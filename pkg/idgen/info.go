package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const msPerYear = 365.25 * 24 * 60 * 60 * 1000

// Info is the read-only capacity report of a generator.
type Info struct {
	EpochBits          int     `json:"epoch_bits"`
	NodeBits           int     `json:"node_bits"`
	SequenceBits       int     `json:"sequence_bits"`
	MaxNodes           int64   `json:"max_nodes"`
	IDsPerMillisecond  int64   `json:"ids_per_ms"`
	GlobalIDsPerMillis int64   `json:"global_ids_per_ms"`
	LifetimeYears      float64 `json:"lifetime_years"`
	CustomEpoch        int64   `json:"custom_epoch"`
	NodeID             int64   `json:"node_id"`
}

// Info reports the configuration-derived capacity of s.
func (s *Snowflake) Info() Info {
	l := s.layout
	return Info{
		EpochBits:          EpochBits,
		NodeBits:           l.NodeBits,
		SequenceBits:       l.SequenceBits,
		MaxNodes:           l.MaxNodeID + 1,
		IDsPerMillisecond:  l.MaxSequence + 1,
		GlobalIDsPerMillis: (l.MaxNodeID + 1) * (l.MaxSequence + 1),
		LifetimeYears:      float64(int64(1)<<EpochBits) / msPerYear,
		CustomEpoch:        s.epoch,
		NodeID:             s.nodeID,
	}
}

// EpochTime returns the custom epoch as a UTC time.
func (i Info) EpochTime() time.Time {
	return time.UnixMilli(i.CustomEpoch).UTC()
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timeshard Generator Configuration:\n")
	fmt.Fprintf(&b, "  Bit Allocation: %d-%d-%d (total: %d)\n\n",
		i.EpochBits, i.NodeBits, i.SequenceBits, i.EpochBits+i.NodeBits+i.SequenceBits)
	fmt.Fprintf(&b, "  Timestamp:\n")
	fmt.Fprintf(&b, "    - Bits: %d\n", i.EpochBits)
	fmt.Fprintf(&b, "    - Range: ~%.1f years from epoch\n", i.LifetimeYears)
	fmt.Fprintf(&b, "    - Custom Epoch: %d (%s)\n\n", i.CustomEpoch, i.EpochTime().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "  Node ID:\n")
	fmt.Fprintf(&b, "    - Bits: %d\n", i.NodeBits)
	fmt.Fprintf(&b, "    - Max Nodes: %s\n", groupThousands(i.MaxNodes))
	fmt.Fprintf(&b, "    - Current Node: %d\n\n", i.NodeID)
	fmt.Fprintf(&b, "  Sequence:\n")
	fmt.Fprintf(&b, "    - Bits: %d\n", i.SequenceBits)
	fmt.Fprintf(&b, "    - IDs per ms: %s\n", groupThousands(i.IDsPerMillisecond))
	fmt.Fprintf(&b, "    - Throughput: %s IDs/ms globally\n", groupThousands(i.GlobalIDsPerMillis))
	return b.String()
}

func groupThousands(n int64) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
