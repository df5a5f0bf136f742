package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coredb-labs/flashmap"
	"github.com/coredb-labs/flashmap/internal/bench"
	"github.com/coredb-labs/flashmap/internal/metrics"
	"github.com/coredb-labs/flashmap/internal/xlog"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/cobra"
)

func runBenchmark(_ *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	duration, err := time.ParseDuration(cfg.duration)
	if err != nil {
		return fmt.Errorf("invalid --duration %q: %w", cfg.duration, err)
	}

	log := xlog.New("flashbench")
	log.SetLevel(xlog.ParseLevel(cfg.logLevel))

	strategy := flashmap.Clone
	if cfg.strategy == "alias" {
		strategy = flashmap.Alias
	}

	recorder := metrics.NewRecorder("flashbench")
	if cfg.metricsAddr != "" {
		srv := &http.Server{
			Addr: cfg.metricsAddr,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				recorder.Set().WritePrometheus(w)
			}),
		}
		go func() {
			log.Infof("serving metrics on %s", cfg.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("metrics server: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	wh, rh := flashmap.NewBuilder[string, []byte]().
		WithCapacity(cfg.keyspace).
		WithValueStrategy(strategy).
		WithHooks(recorder).
		Build()
	defer wh.Close()
	defer rh.Close()

	// Seed the map so readers have something to see from the start.
	value := make([]byte, cfg.valueSize)
	seedGuard := wh.Guard()
	for i := 0; i < cfg.keyspace/10; i++ {
		seedGuard.Insert(keyFor(i), value)
	}
	seedGuard.Publish()

	queue := bench.NewSampleQueue()
	histograms := xsync.NewMapOf[string, *bench.LatencyHistogram]()
	opCounts := xsync.NewMapOf[int, *atomic.Int64]()

	var aggregatorWG sync.WaitGroup
	aggregatorWG.Add(1)
	go func() {
		defer aggregatorWG.Done()
		for s := range queue.Recv() {
			h, _ := histograms.LoadOrCompute(s.Op, func() *bench.LatencyHistogram {
				return bench.NewLatencyHistogram()
			})
			h.AddSample(s.Nanos)

			if s.Worker < 0 {
				// The writer's batches are reported under a synthetic
				// negative id; they don't belong in the reader work
				// distribution below.
				continue
			}
			counter, _ := opCounts.LoadOrCompute(s.Worker, func() *atomic.Int64 {
				return &atomic.Int64{}
			})
			counter.Add(1)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	log.Infof("running for %s with %d readers, keyspace %d, strategy %s", duration, cfg.workers, cfg.keyspace, cfg.strategy)

	var readerWG sync.WaitGroup
	for i := 0; i < cfg.workers; i++ {
		readerWG.Add(1)
		go readerWorker(ctx, &readerWG, rh.Clone(), i, cfg.keyspace, queue)
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writerLoop(ctx, wh, cfg.keyspace, cfg.writeBatch, value, queue)
	}()

	readerWG.Wait()
	<-writerDone
	queue.Close()
	aggregatorWG.Wait()

	report(histograms, opCounts, cfg.csvPath)
	return nil
}

func keyFor(i int) string {
	return "key-" + strconv.Itoa(i)
}

func readerWorker(ctx context.Context, wg *sync.WaitGroup, rh *flashmap.ReadHandle[string, []byte], id, keyspace int, queue *bench.SampleQueue) {
	defer wg.Done()
	defer rh.Close()

	rng := rand.New(rand.NewPCG(uint64(id), uint64(time.Now().UnixNano())))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		key := keyFor(rng.IntN(keyspace))
		start := time.Now()
		g := rh.Guard()
		_, _ = g.Get(key)
		g.Close()
		queue.PushSample(id, "get", time.Since(start).Nanoseconds())
	}
}

func writerLoop(ctx context.Context, wh *flashmap.WriteHandle[string, []byte], keyspace, batch int, value []byte, queue *bench.SampleQueue) {
	rng := rand.New(rand.NewPCG(1, uint64(time.Now().UnixNano())))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		g := wh.Guard()
		for i := 0; i < batch; i++ {
			key := keyFor(rng.IntN(keyspace))
			if rng.IntN(4) == 0 {
				g.Remove(key)
			} else {
				g.Insert(key, value)
			}
		}
		g.Publish()
		queue.PushSample(-1, "write_batch", time.Since(start).Nanoseconds())
	}
}

func report(histograms *xsync.MapOf[string, *bench.LatencyHistogram], opCounts *xsync.MapOf[int, *atomic.Int64], csvPath string) {
	fmt.Println()
	fmt.Println("results:")

	var counts []float64
	opCounts.Range(func(_ int, c *atomic.Int64) bool {
		counts = append(counts, float64(c.Load()))
		return true
	})
	if len(counts) > 0 {
		dist := bench.NewDistributionStats(counts)
		fmt.Printf("reader work distribution quality: %.3f (1.0 = perfectly even)\n", dist.DistributionQuality)
	}

	var rows [][]string
	rows = append(rows, []string{"op", "count", "mean_ns", "p50_ns", "p95_ns", "p99_ns"})

	histograms.Range(func(op string, h *bench.LatencyHistogram) bool {
		fmt.Printf("  %-12s count=%-10d mean=%-10s p50=%-10s p95=%-10s p99=%-10s\n",
			op, h.Count(),
			time.Duration(h.Mean()), time.Duration(h.PercentileEstimate(50)),
			time.Duration(h.PercentileEstimate(95)), time.Duration(h.PercentileEstimate(99)))
		rows = append(rows, []string{
			op,
			strconv.FormatInt(h.Count(), 10),
			strconv.FormatInt(h.Mean(), 10),
			strconv.FormatInt(h.PercentileEstimate(50), 10),
			strconv.FormatInt(h.PercentileEstimate(95), 10),
			strconv.FormatInt(h.PercentileEstimate(99), 10),
		})
		return true
	})

	if csvPath == "" {
		return
	}
	f, err := os.Create(csvPath)
	if err != nil {
		fmt.Printf("could not write csv: %v\n", err)
		return
	}
	defer f.Close()
	_ = csv.NewWriter(f).WriteAll(rows)
}
