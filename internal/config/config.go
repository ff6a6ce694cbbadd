package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Script  ScriptConfig  `toml:"script"`
	Logging LoggingConfig `toml:"logging"`
}

type SimConfig struct {
	Ticks        int           `toml:"ticks"`     // 0 runs until interrupted
	TickRate     time.Duration `toml:"tick_rate"` // 0 ticks as fast as possible
	Entities     int           `toml:"entities"`  // spawned before the first tick
	SpawnPerTick int           `toml:"spawn_per_tick"`
	Bounds       float64       `toml:"bounds"` // movers leaving [-bounds, bounds] are frozen
}

type ScriptConfig struct {
	Path string `toml:"path"` // empty uses the built-in spawn script
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Sim.Ticks < 0:
		return eris.Errorf("sim.ticks must not be negative, got %d", c.Sim.Ticks)
	case c.Sim.TickRate < 0:
		return eris.Errorf("sim.tick_rate must not be negative, got %s", c.Sim.TickRate)
	case c.Sim.Entities < 0 || c.Sim.SpawnPerTick < 0:
		return eris.New("sim.entities and sim.spawn_per_tick must not be negative")
	case c.Sim.Bounds <= 0:
		return eris.Errorf("sim.bounds must be positive, got %g", c.Sim.Bounds)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return eris.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Ticks:        600,
			TickRate:     50 * time.Millisecond,
			Entities:     64,
			SpawnPerTick: 1,
			Bounds:       100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
