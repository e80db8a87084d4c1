package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, idgen.DefaultNodeBits, cfg.Generator.NodeBits)
	assert.Equal(t, idgen.DefaultCustomEpoch, cfg.Generator.CustomEpoch)
	assert.Nil(t, cfg.Generator.NodeID)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvNodeIDBits:  "12",
		EnvNodeID:      "4095",
		EnvCustomEpoch: "1704067200000",
	}))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Generator.NodeBits)
	require.NotNil(t, cfg.Generator.NodeID)
	assert.Equal(t, int64(4095), *cfg.Generator.NodeID)
	assert.Equal(t, int64(1704067200000), cfg.Generator.CustomEpoch)
}

func TestConfig_ApplyEnvRejectsNonInteger(t *testing.T) {
	for _, name := range []string{EnvNodeIDBits, EnvNodeID, EnvCustomEpoch} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyEnv(envMap(map[string]string{name: "ten"}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "NodeBitsTooLarge", mutate: func(c *Config) { c.Generator.NodeBits = 17 }},
		{name: "NodeBitsZero", mutate: func(c *Config) { c.Generator.NodeBits = 0 }},
		{name: "UnknownClock", mutate: func(c *Config) { c.Generator.ClockSource = "ntp" }},
		{name: "ZeroBatch", mutate: func(c *Config) { c.Generator.MaxBatch = 0 }},
		{name: "NegativeBackoff", mutate: func(c *Config) { c.Generator.WaitBackoffUS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// writeConfig writes body to a temp directory under the working directory and returns
// its absolute path.
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

func TestWorkDirRelative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "Relative", path: "local.yaml", want: "local.yaml"},
		{name: "RelativeUncleaned", path: "./a/../local.yaml", want: "local.yaml"},
		{name: "AbsoluteInside", path: filepath.Join(wd, "testdata", "x.yaml"), want: filepath.Join("testdata", "x.yaml")},
		{name: "AbsoluteOutside", path: filepath.Join(filepath.Dir(wd), "x.yaml"), wantErr: true},
		{name: "RelativeEscape", path: "../x.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workDirRelative(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfigOutsideWorkDir)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir, err := os.MkdirTemp(".", "testconfig-")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigOutsideWorkDir)
}

func TestLoad_OutsideWorkDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "test.yaml"))
	assert.ErrorIs(t, err, ErrConfigOutsideWorkDir)
}

func TestLoad_AbsolutePathInsideWorkDir(t *testing.T) {
	path, err := filepath.Abs("local.yaml")
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.Server.HTTPAddr)
	assert.Equal(t, 50, cfg.Redis.TimeoutMS)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, "generator:\n  node_bits: 12\n  clock_source: system\n  max_batch: 10\nredis:\n  timeout_ms: 75\n")

	t.Setenv(EnvNodeID, "17")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Generator.NodeBits)
	assert.Equal(t, 10, cfg.Generator.MaxBatch)
	assert.Equal(t, 75, cfg.Redis.TimeoutMS)
	assert.Equal(t, ":9090", cfg.Server.GRPCAddr, "unset keys keep defaults")
	require.NotNil(t, cfg.Generator.NodeID)
	assert.Equal(t, int64(17), *cfg.Generator.NodeID)

	t.Setenv(EnvNodeIDBits, "20")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator.node_bits")
	assert.Contains(t, err.Error(), "got 20")
}

func TestLoad_FileRejectsNodeBitsAboveCap(t *testing.T) {
	path := writeConfig(t, "generator:\n  node_bits: 20\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigOutsideWorkDir)
	assert.Contains(t, err.Error(), "generator.node_bits")
	assert.Contains(t, err.Error(), "got 20")
}
