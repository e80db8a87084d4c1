package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake_Info(t *testing.T) {
	sf, err := New(Config{NodeID: 5, NodeBits: 12, CustomEpoch: DefaultCustomEpoch})
	require.NoError(t, err)

	info := sf.Info()
	assert.Equal(t, 41, info.EpochBits)
	assert.Equal(t, 12, info.NodeBits)
	assert.Equal(t, 10, info.SequenceBits)
	assert.Equal(t, int64(4096), info.MaxNodes)
	assert.Equal(t, int64(1024), info.IDsPerMillisecond)
	assert.Equal(t, int64(4096*1024), info.GlobalIDsPerMillis)
	assert.InDelta(t, 69.68, info.LifetimeYears, 0.01)
	assert.Equal(t, int64(5), info.NodeID)
}

func TestInfo_String(t *testing.T) {
	sf, err := New(DefaultConfig(42))
	require.NoError(t, err)

	s := sf.Info().String()
	for _, want := range []string{
		"Bit Allocation: 41-10-12 (total: 63)",
		"Range: ~69.7 years from epoch",
		"Custom Epoch: 1702385533000 (2023-12-12 12:52:13 UTC)",
		"Max Nodes: 1,024",
		"Current Node: 42",
		"IDs per ms: 4,096",
		"Throughput: 4,194,304 IDs/ms globally",
	} {
		assert.True(t, strings.Contains(s, want), "summary missing %q:\n%s", want, s)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		65536:    "65,536",
		4194304:  "4,194,304",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupThousands(in))
	}
}
