package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/anthanhphan/gosdk/logger"
	grpcHandler "github.com/anthanhphan/timeshard/internal/timeshard/adapter/inbound/grpc"
	"github.com/anthanhphan/timeshard/internal/timeshard/bench"
)

func main() {
	var (
		workers   int
		perWorker int
		warmup    int
		layouts   string
		target    string
	)
	flag.IntVar(&workers, "workers", 4, "Number of concurrent workers")
	flag.IntVar(&perWorker, "n", 100000, "IDs generated per worker")
	flag.IntVar(&warmup, "warmup", 1000, "IDs generated before timing starts")
	flag.StringVar(&layouts, "node-bits", "10", "Comma separated node bit widths to compare")
	flag.StringVar(&target, "target", "", "gRPC address of a running timeshard service; benchmarks in-process when empty")
	flag.Parse()

	logger.InitLogger(&logger.Config{LogLevel: logger.LevelInfo, LogEncoding: logger.EncodingJSON})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := bench.Options{Workers: workers, PerWorker: perWorker, Warmup: warmup}

	var (
		results []bench.Result
		err     error
	)
	if target != "" {
		results, err = runRemote(ctx, target, opts)
	} else {
		var bits []int
		bits, err = parseBits(layouts)
		if err == nil {
			results, err = bench.RunLayouts(ctx, bits, opts)
		}
	}
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	failed := false
	for _, r := range results {
		logger.Infow("Benchmark result",
			"name", r.Name,
			"workers", r.Workers,
			"generated", r.Generated,
			"unique", r.Unique,
			"duration", r.Duration.String(),
			"ids_per_sec", int64(r.Throughput()),
			"avg_per_id", r.AvgPerID().String())
		if !r.AllUnique() {
			logger.Errorw("Duplicate IDs detected", "name", r.Name, "duplicates", r.Generated-r.Unique)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runRemote(ctx context.Context, target string, opts bench.Options) ([]bench.Result, error) {
	client, err := grpcHandler.Dial(target)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	r, err := bench.Run(ctx, "remote "+target, client.NextID, opts)
	if err != nil {
		return nil, err
	}
	return []bench.Result{r}, nil
}

func parseBits(s string) ([]int, error) {
	var bits []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		bits = append(bits, n)
	}
	return bits, nil
}
