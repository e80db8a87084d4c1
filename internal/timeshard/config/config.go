package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/timeshard/pkg/idgen"
)

// Environment overrides, applied after the config file.
const (
	EnvNodeIDBits  = "TIMESHARD_NODE_ID_BITS"
	EnvNodeID      = "TIMESHARD_NODE_ID"
	EnvCustomEpoch = "TIMESHARD_CUSTOM_EPOCH"
)

// ErrConfigOutsideWorkDir is returned for a config file outside the working directory.
var ErrConfigOutsideWorkDir = errors.New("config file must be inside the working directory")

const (
	ClockSourceSystem = "system"
	ClockSourceRedis  = "redis"
)

// Config holds Timeshard Service configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	Gossip    GossipConfig    `json:"gossip" yaml:"gossip"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	GRPCAddr string `json:"grpc_addr" yaml:"grpc_addr"`
}

type GeneratorConfig struct {
	NodeID        *int64 `json:"node_id" yaml:"node_id"` // nil: derive from host
	NodeBits      int    `json:"node_bits" yaml:"node_bits"`
	CustomEpoch   int64  `json:"custom_epoch" yaml:"custom_epoch"`
	ClockSource   string `json:"clock_source" yaml:"clock_source"` // "system", "redis"
	WaitBackoffUS int    `json:"wait_backoff_us" yaml:"wait_backoff_us"`
	MaxBatch      int    `json:"max_batch" yaml:"max_batch"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
}

type GossipConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Name     string   `json:"name" yaml:"name"`
	BindAddr string   `json:"bind_addr" yaml:"bind_addr"`
	Port     int      `json:"port" yaml:"port"`
	Seeds    []string `json:"seeds" yaml:"seeds"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: ":8090",
			GRPCAddr: ":9090",
		},
		Generator: GeneratorConfig{
			NodeBits:    idgen.DefaultNodeBits,
			CustomEpoch: idgen.DefaultCustomEpoch,
			ClockSource: ClockSourceSystem,
			MaxBatch:    1000,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			TimeoutMS: 50,
		},
		Gossip: GossipConfig{
			BindAddr: "0.0.0.0",
			Port:     7946,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, then applies TIMESHARD_* environment overrides.
// The file must live under the working directory; an absolute path is accepted and
// rewritten relative to it.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "timeshard", "config", env+".yaml")
	}

	configPath, err := workDirRelative(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	if err := parsedCfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parsedCfg.Validate(); err != nil {
		return nil, err
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// ApplyEnv overrides generator settings from the environment. A variable that is set but
// not an integer is a configuration error.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvNodeIDBits); ok {
		bits, err := parseEnvInt(EnvNodeIDBits, v)
		if err != nil {
			return err
		}
		c.Generator.NodeBits = int(bits)
	}

	if v, ok := lookup(EnvNodeID); ok {
		id, err := parseEnvInt(EnvNodeID, v)
		if err != nil {
			return err
		}
		c.Generator.NodeID = &id
	}

	if v, ok := lookup(EnvCustomEpoch); ok {
		epoch, err := parseEnvInt(EnvCustomEpoch, v)
		if err != nil {
			return err
		}
		c.Generator.CustomEpoch = epoch
	}

	return nil
}

// Validate checks settings the generator does not validate itself.
func (c *Config) Validate() error {
	if c.Generator.NodeBits < idgen.MinNodeBits || c.Generator.NodeBits > idgen.MaxNodeBits {
		return fmt.Errorf("generator.node_bits must be in [%d, %d], got %d",
			idgen.MinNodeBits, idgen.MaxNodeBits, c.Generator.NodeBits)
	}
	switch c.Generator.ClockSource {
	case ClockSourceSystem, ClockSourceRedis:
	default:
		return fmt.Errorf("generator.clock_source must be %q or %q, got %q",
			ClockSourceSystem, ClockSourceRedis, c.Generator.ClockSource)
	}
	if c.Generator.MaxBatch <= 0 {
		return fmt.Errorf("generator.max_batch must be positive, got %d", c.Generator.MaxBatch)
	}
	if c.Generator.WaitBackoffUS < 0 {
		return fmt.Errorf("generator.wait_backoff_us must not be negative, got %d", c.Generator.WaitBackoffUS)
	}
	return nil
}

// workDirRelative rewrites path relative to the working directory, which is the only
// root conflux reads from.
func workDirRelative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Clean(path)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		rel, err := filepath.Rel(wd, path)
		if err != nil {
			return "", fmt.Errorf("config path %s: %w", path, err)
		}
		path = rel
	}

	if path == ".." || strings.HasPrefix(path, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrConfigOutsideWorkDir, path)
	}
	return path, nil
}

func parseEnvInt(name, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s environment variable must be an integer, got %q", name, value)
	}
	return n, nil
}
