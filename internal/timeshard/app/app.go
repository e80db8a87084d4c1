package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	grpcHandler "github.com/anthanhphan/timeshard/internal/timeshard/adapter/inbound/grpc"
	httpHandler "github.com/anthanhphan/timeshard/internal/timeshard/adapter/inbound/http"
	"github.com/anthanhphan/timeshard/internal/timeshard/config"
	"github.com/anthanhphan/timeshard/internal/timeshard/port"
	"github.com/anthanhphan/timeshard/internal/timeshard/service"
	"github.com/anthanhphan/timeshard/pkg/gossip"
	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/anthanhphan/timeshard/pkg/nodeid"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
)

type App struct {
	cfg        *config.Config
	httpServer *httpHandler.Server
	grpcServer *grpc.Server
	detector   *gossip.Detector
	redis      *redis.Client
	IDGen      *idgen.Snowflake
}

// New builds the service from the config at configPath. Each App owns its own generator;
// idgen.Shared is left to library callers.
func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	a := &App{cfg: cfg}

	// 3. Clock source
	clock, err := a.buildClock()
	if err != nil {
		return nil, err
	}

	// 4. Node identity and generator
	layout, err := idgen.NewLayout(cfg.Generator.NodeBits)
	if err != nil {
		a.release()
		return nil, fmt.Errorf("invalid generator layout: %w", err)
	}
	nodeID := resolveNodeID(cfg.Generator.NodeID, layout.MaxNodeID)

	idGen, err := idgen.New(idgen.Config{
		NodeID:      nodeID,
		NodeBits:    cfg.Generator.NodeBits,
		CustomEpoch: cfg.Generator.CustomEpoch,
	},
		idgen.WithClock(clock),
		idgen.WithWaitBackoff(time.Duration(cfg.Generator.WaitBackoffUS)*time.Microsecond),
	)
	if err != nil {
		a.release()
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}
	a.IDGen = idGen

	// 5. Node ID conflict detection
	var conflicts port.ConflictReporter
	if cfg.Gossip.Enabled {
		name := cfg.Gossip.Name
		if name == "" {
			host, _ := os.Hostname()
			name = fmt.Sprintf("%s-%d", host, cfg.Gossip.Port)
		}
		detector, err := gossip.NewDetector(name, cfg.Gossip.BindAddr, cfg.Gossip.Port, gossip.NodeMeta{
			NodeID:      nodeID,
			NodeBits:    cfg.Generator.NodeBits,
			CustomEpoch: cfg.Generator.CustomEpoch,
		})
		if err != nil {
			a.release()
			return nil, fmt.Errorf("failed to init gossip: %w", err)
		}
		a.detector = detector
		conflicts = detector
	}

	// 6. Services and transports
	svc := service.NewIDService(idGen, conflicts, cfg.Generator.MaxBatch)
	a.httpServer = httpHandler.NewServer(cfg, svc)
	a.grpcServer = grpc.NewServer()
	grpcHandler.RegisterIDServiceServer(a.grpcServer, grpcHandler.NewServer(svc))

	info := idGen.Info()
	logger.Infow("Generator initialized",
		"node_id", info.NodeID,
		"node_bits", info.NodeBits,
		"sequence_bits", info.SequenceBits,
		"custom_epoch", info.CustomEpoch,
		"clock_source", cfg.Generator.ClockSource)
	logger.Debugw("Generator configuration", "summary", info.String())

	return a, nil
}

func (a *App) buildClock() (idgen.Clock, error) {
	if a.cfg.Generator.ClockSource != config.ClockSourceRedis {
		return idgen.SystemClock{}, nil
	}

	a.redis = redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.redis.Ping(ctx).Err(); err != nil {
		logger.Warnw("Redis clock unreachable at startup, system clock will be used until it recovers",
			"addr", a.cfg.Redis.Addr, "error", err.Error())
	}

	return idgen.NewRedisClock(a.redis,
		idgen.WithRedisTimeout(time.Duration(a.cfg.Redis.TimeoutMS)*time.Millisecond)), nil
}

func resolveNodeID(configured *int64, maxNodeID int64) int64 {
	if configured != nil {
		return *configured
	}
	id := nodeid.Resolve(maxNodeID, nodeid.Default()...)
	logger.Infow("Node ID derived from host", "node_id", id)
	return id
}

func (a *App) Run() error {
	// Join gossip
	if a.detector != nil && len(a.cfg.Gossip.Seeds) > 0 {
		if err := a.detector.Join(a.cfg.Gossip.Seeds); err != nil {
			logger.Warnw("Failed to join gossip cluster, conflict detection limited to later joins", "error", err.Error())
		}
	}

	serverErrCh := make(chan error, 2)

	// Start HTTP
	logger.Infow("Timeshard HTTP starting", "addr", a.cfg.Server.HTTPAddr)
	go func() {
		if err := a.httpServer.Start(); err != nil {
			serverErrCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	// Start gRPC
	listener, err := net.Listen("tcp", a.cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.GRPCAddr, err)
	}
	logger.Infow("Timeshard gRPC starting", "addr", a.cfg.Server.GRPCAddr)
	go func() {
		if err := a.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serverErrCh <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = err
		logger.Errorw("Timeshard server exited unexpectedly", "error", err.Error())
	}

	a.shutdown(&runErr)
	return runErr
}

func (a *App) shutdown(runErr *error) {
	logger.Info("Shutting down timeshard services")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if *runErr == nil {
			*runErr = err
		}
	}
	a.grpcServer.GracefulStop()

	a.release()
}

// release leaves gossip and closes the Redis client, whichever were opened.
func (a *App) release() {
	if a.detector != nil {
		if err := a.detector.Leave(); err != nil {
			logger.Warnw("Gossip leave failed", "error", err.Error())
		}
		a.detector = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnw("Redis close failed", "error", err.Error())
		}
		a.redis = nil
	}
}
