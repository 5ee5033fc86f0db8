package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/enetx/g"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/enetx/stackfsm"
	"github.com/enetx/stackfsm/config"
	"github.com/enetx/stackfsm/internal/logging"
	"github.com/enetx/stackfsm/internal/status"
	"github.com/enetx/stackfsm/metrics"
	"github.com/enetx/stackfsm/runner"
	"github.com/enetx/stackfsm/westworld"
	"github.com/enetx/stackfsm/wheel"
)

const (
	minerName   = "Miner Bob"
	partnerName = "Elsa"

	// ticks between two rounds of the town clock
	clockPeriod = 12
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Long: `Runs the miner and his partner until every agent stops, the tick limit is
reached or the process is interrupted. Flags override the config file and the
WESTWORLD_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dot, _ := cmd.Flags().GetBool("dot")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return simulate(ctx, cfg, dot)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Uint64P("ticks", "n", 0, "Stop after this many ticks (0 runs until every agent stops)")
	f.Duration("interval", 0, "Pause between ticks")
	f.Bool("parallel", false, "Update agents concurrently")
	f.String("metrics-addr", "", "Serve /agents and /metrics on this address")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.Uint64("seed", 0, "Seed for random decisions (0 picks one)")
	f.Bool("dot", false, "Print each agent's stack as Graphviz DOT on exit")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("ticks") {
		cfg.MaxTicks, _ = f.GetUint64("ticks")
	}
	if f.Changed("interval") {
		cfg.TickInterval, _ = f.GetDuration("interval")
	}
	if f.Changed("parallel") {
		cfg.Parallel, _ = f.GetBool("parallel")
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = f.GetString("metrics-addr")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint64("seed")
	}

	return cfg, cfg.Validate()
}

func simulate(ctx context.Context, cfg config.Config, dot bool) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := logging.New(level).With(slog.String("run", uuid.NewString()))

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("seeded", slog.Uint64("seed", seed))

	reg := prometheus.NewRegistry()
	collector := metrics.New()
	if err := collector.Register(reg); err != nil {
		return err
	}

	bob := westworld.NewMiner(minerName, cfg.Miner, logger)
	miner := westworld.NewMinerMachine(bob,
		stackfsm.LogObserver[westworld.MinerState](logger, minerName),
		metrics.Observer[westworld.MinerState](collector, minerName),
	)
	metrics.Track(collector, minerName, miner)

	elsa := westworld.NewPartner(partnerName, cfg.Partner, rand.New(rand.NewPCG(seed, seed>>1|1)), logger)
	partner := westworld.NewPartnerMachine(elsa,
		stackfsm.LogObserver[westworld.PartnerState](logger, partnerName),
		metrics.Observer[westworld.PartnerState](collector, partnerName),
	)
	metrics.Track(collector, partnerName, partner)

	minerSync, partnerSync := miner.Sync(), partner.Sync()

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr: cfg.MetricsAddr,
			Handler: status.NewHandler(reg,
				status.FromMachine(minerName, minerSync),
				status.FromMachine(partnerName, partnerSync),
			),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("status server listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status server failed", slog.Any("error", err))
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	clock := wheel.New[string](clockPeriod + 1)
	_ = clock.Schedule(clockPeriod, "The town clock strikes")

	r := runner.New(
		runner.WithInterval(cfg.TickInterval),
		runner.WithMaxTicks(cfg.MaxTicks),
		runner.WithParallel(cfg.Parallel),
		runner.WithLogger(logger),
		runner.WithTickHook(func(uint64) { collector.Tick() }),
		runner.WithTimer(clock, func(tick uint64, msg string) {
			logger.Info(msg, slog.Uint64("tick", tick))
			_ = clock.Schedule(clockPeriod, msg)
		}),
	)

	err = r.Run(ctx,
		runner.Named[westworld.MinerState](minerName, minerSync),
		runner.Named[westworld.PartnerState](partnerName, partnerSync),
	)

	if dot {
		g.Println("// {}\n{}", minerName, minerSync.ToDOT())
		g.Println("// {}\n{}", partnerName, partnerSync.ToDOT())
	}

	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}

	return err
}
