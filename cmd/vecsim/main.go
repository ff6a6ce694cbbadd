// Command vecsim runs the demo aggregate: a spawn script populates the world
// and a phase-ordered runner moves, damages, heals, freezes and reaps
// entities every tick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/vecs/internal/config"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/scripting"
	"github.com/l1jgo/vecs/internal/system"
	"github.com/l1jgo/vecs/internal/world"
)

const auraRadius = 5

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		ticks   int
	)
	cmd := &cobra.Command{
		Use:           "vecsim",
		Short:         "Run the entity store demo simulation",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return eris.Wrap(err, "load config")
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Sim.Ticks = ticks
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	defaultPath := "config/vecsim.toml"
	if p := os.Getenv("VECSIM_CONFIG"); p != "" {
		defaultPath = p
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultPath, "config file")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "override sim.ticks (0 runs until interrupted)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return eris.Wrap(err, "init logger")
	}
	defer log.Sync()

	lua, err := scripting.NewEngine(cfg.Script.Path, log)
	if err != nil {
		return eris.Wrap(err, "lua engine")
	}
	defer lua.Close()

	w := world.NewWorld()
	events := system.NewEvents()
	spawner := system.NewSpawnSystem(w, lua, events, cfg.Sim.SpawnPerTick, log)
	if err := spawner.Spawn(cfg.Sim.Entities); err != nil {
		return eris.Wrap(err, "initial spawn")
	}
	log.Info("world ready",
		zap.String("script", lua.Source()),
		zap.Int("entities", w.Len()),
		zap.Int("movers", w.Velocity.Len()),
	)

	runner := coresys.NewRunner(log)
	runner.Register(spawner)
	runner.Register(system.NewEventSystem(events, log))
	runner.Register(system.NewMovementSystem(w))
	runner.Register(system.NewDamageSystem(w))
	runner.Register(system.NewAuraSystem(w, auraRadius))
	runner.Register(system.NewReaperSystem(w, events, log))
	runner.Register(system.NewBoundsSystem(w, cfg.Sim.Bounds))
	runner.Register(system.NewCleanupSystem(w, log))

	dt := cfg.Sim.TickRate
	var tick <-chan time.Time
	if dt > 0 {
		ticker := time.NewTicker(dt)
		defer ticker.Stop()
		tick = ticker.C
	} else {
		// free-running: use a nominal step for integration
		dt = 50 * time.Millisecond
	}

	for cfg.Sim.Ticks == 0 || runner.Ticks() < uint64(cfg.Sim.Ticks) {
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				log.Info("shutdown signal", zap.Uint64("ticks", runner.Ticks()))
				return nil
			}
		} else if ctx.Err() != nil {
			log.Info("shutdown signal", zap.Uint64("ticks", runner.Ticks()))
			return nil
		}

		if err := safeTick(runner, dt); err != nil {
			log.Error("tick aborted", zap.Uint64("tick", runner.Ticks()+1), zap.Error(err))
			return err
		}
		if err := spawner.Err(); err != nil {
			return eris.Wrap(err, "spawn")
		}
	}

	log.Info("simulation finished",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("alive", w.Len()),
		zap.Int("frozen", w.Frozen.Len()),
		zap.Int("slots", w.Handles().Cap()),
	)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
