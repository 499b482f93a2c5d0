// Package config loads the invaders configuration from a TOML file and INVADERS_*
// environment variables, in that order, on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// DefaultPath is used when neither a flag nor INVADERS_CONFIG names a file.
const DefaultPath = "config/invaders.toml"

type Config struct {
	Window   Window   `toml:"window"`
	Gameplay Gameplay `toml:"gameplay"`
	Logging  Logging  `toml:"logging"`
}

type Window struct {
	Width        int    `toml:"width"         env:"INVADERS_WINDOW_WIDTH"`
	Height       int    `toml:"height"        env:"INVADERS_WINDOW_HEIGHT"`
	Title        string `toml:"title"         env:"INVADERS_WINDOW_TITLE"`
	DebugOverlay bool   `toml:"debug_overlay" env:"INVADERS_DEBUG_OVERLAY"`
}

// Gameplay holds the tuning knobs of the simulation core.
type Gameplay struct {
	EnemyMax            uint32        `toml:"enemy_max"             env:"INVADERS_ENEMY_MAX"`
	FormationMembersMax uint32        `toml:"formation_members_max" env:"INVADERS_FORMATION_MEMBERS_MAX"`
	PlayerMaxLife       uint32        `toml:"player_max_life"       env:"INVADERS_PLAYER_MAX_LIFE"`
	RespawnDelay        time.Duration `toml:"respawn_delay"         env:"INVADERS_RESPAWN_DELAY"`
	FireInterval        time.Duration `toml:"fire_interval"         env:"INVADERS_FIRE_INTERVAL"`
	EnemySpawnInterval  time.Duration `toml:"enemy_spawn_interval"  env:"INVADERS_ENEMY_SPAWN_INTERVAL"`
	EnemyFireChance     float64       `toml:"enemy_fire_chance"     env:"INVADERS_ENEMY_FIRE_CHANCE"` // per enemy per tick (0.0-1.0)
	ExplosionFrameTime  time.Duration `toml:"explosion_frame_time"  env:"INVADERS_EXPLOSION_FRAME_TIME"`
	Seed                uint64        `toml:"seed"                  env:"INVADERS_SEED"` // 0 = random
}

type Logging struct {
	Level  string `toml:"level"  env:"INVADERS_LOG_LEVEL"`
	Format string `toml:"format" env:"INVADERS_LOG_FORMAT"` // "json" or "console"
	File   string `toml:"file"   env:"INVADERS_LOG_FILE"`   // empty = stderr
}

// Load reads path (a missing file is fine), then applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Path returns the config path from the flag value, INVADERS_CONFIG, or DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("INVADERS_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func Defaults() *Config {
	return &Config{
		Window: Window{
			Width:  598,
			Height: 676,
			Title:  "Invaders!",
		},
		Gameplay: DefaultGameplay(),
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func DefaultGameplay() Gameplay {
	return Gameplay{
		EnemyMax:            10,
		FormationMembersMax: 2,
		PlayerMaxLife:       3,
		RespawnDelay:        2 * time.Second,
		FireInterval:        250 * time.Millisecond,
		EnemySpawnInterval:  time.Second,
		EnemyFireChance:     1.0 / 60.0,
		ExplosionFrameTime:  50 * time.Millisecond,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if err := c.Gameplay.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (g Gameplay) Validate() error {
	var errs []error
	if g.EnemyMax == 0 {
		errs = append(errs, errors.New("enemy_max must be at least 1"))
	}
	if g.FormationMembersMax == 0 {
		errs = append(errs, errors.New("formation_members_max must be at least 1"))
	}
	if g.PlayerMaxLife == 0 {
		errs = append(errs, errors.New("player_max_life must be at least 1"))
	}
	if g.EnemyFireChance < 0 || g.EnemyFireChance > 1 {
		errs = append(errs, fmt.Errorf("enemy_fire_chance %v outside [0,1]", g.EnemyFireChance))
	}
	if g.EnemySpawnInterval <= 0 {
		errs = append(errs, errors.New("enemy_spawn_interval must be positive"))
	}
	if g.ExplosionFrameTime <= 0 {
		errs = append(errs, errors.New("explosion_frame_time must be positive"))
	}
	if g.RespawnDelay < 0 || g.FireInterval < 0 {
		errs = append(errs, errors.New("respawn_delay and fire_interval must not be negative"))
	}
	return errors.Join(errs...)
}
