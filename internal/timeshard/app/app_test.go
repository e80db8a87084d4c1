package app

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/anthanhphan/timeshard/internal/timeshard/config"
	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes body under the working directory and returns its absolute path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir, err := os.MkdirTemp(".", "testconfig-")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path, err := filepath.Abs(filepath.Join(dir, "test.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func redisConfig(addr string, nodeID int) string {
	return `
generator:
  node_id: ` + strconv.Itoa(nodeID) + `
  node_bits: 12
  clock_source: redis
  max_batch: 10
redis:
  addr: "` + addr + `"
  timeout_ms: 100
`
}

func TestNew_RedisClockAndExplicitNodeID(t *testing.T) {
	m := miniredis.RunT(t)
	redisNow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m.SetTime(redisNow)

	a, err := New(writeConfig(t, redisConfig(m.Addr(), 77)))
	require.NoError(t, err)
	t.Cleanup(a.release)

	require.NotNil(t, a.IDGen)
	assert.Equal(t, int64(77), a.IDGen.NodeID())
	assert.Equal(t, 10, a.IDGen.Layout().SequenceBits)

	id, err := a.IDGen.Next()
	require.NoError(t, err)
	c := a.IDGen.Parse(id)
	assert.Equal(t, int64(77), c.NodeID)
	assert.Equal(t, redisNow.UnixMilli(), c.Timestamp, "timestamp comes from Redis TIME")
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(writeConfig(t, "generator:\n  node_bits: 20\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrConfigOutsideWorkDir)
	assert.Contains(t, err.Error(), "generator.node_bits")
	assert.Contains(t, err.Error(), "got 20")
}

func TestNew_ReleasesRedisOnGeneratorError(t *testing.T) {
	m := miniredis.RunT(t)

	// 5000 does not fit in 12 node bits.
	_, err := New(writeConfig(t, redisConfig(m.Addr(), 5000)))
	require.Error(t, err)
	assert.ErrorIs(t, err, idgen.ErrInvalidNodeID)

	assert.GreaterOrEqual(t, m.TotalConnectionCount(), 1, "startup ping reached Redis")
	assert.Eventually(t, func() bool {
		return m.CurrentConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNew_IndependentGenerators(t *testing.T) {
	first, err := New(writeConfig(t, "generator:\n  node_id: 1\n  node_bits: 10\n"))
	require.NoError(t, err)
	second, err := New(writeConfig(t, "generator:\n  node_id: 2\n  node_bits: 12\n"))
	require.NoError(t, err)

	assert.NotSame(t, first.IDGen, second.IDGen)
	assert.Equal(t, int64(1), first.IDGen.NodeID())
	assert.Equal(t, 10, first.IDGen.Layout().NodeBits)
	assert.Equal(t, int64(2), second.IDGen.NodeID())
	assert.Equal(t, 12, second.IDGen.Layout().NodeBits)
}

func TestResolveNodeID(t *testing.T) {
	configured := int64(5)
	assert.Equal(t, int64(5), resolveNodeID(&configured, 1023))

	derived := resolveNodeID(nil, 1023)
	assert.GreaterOrEqual(t, derived, int64(0))
	assert.LessOrEqual(t, derived, int64(1023))
}
