package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// EnvPath names the environment variable consulted when no config path is given.
const EnvPath = "SKYFIRE_CONFIG"

// Config is the root of the simulation configuration.
type Config struct {
	Seed          string        `yaml:"seed"`
	TickRate      int           `yaml:"tick_rate"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	Arena             Size          `yaml:"arena"`
	AnimationInterval time.Duration `yaml:"animation_interval"`

	Ship      ShipConfig      `yaml:"ship"`
	ShipLaser LaserConfig     `yaml:"ship_laser"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Assets    AssetsConfig    `yaml:"assets"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Size is a full width and height in world units.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ShipConfig struct {
	Speed           float64       `yaml:"speed"`
	Size            Size          `yaml:"size"`
	TransitionDelay time.Duration `yaml:"transition_delay"`
}

// LaserConfig is the projectile template of one faction's weapons.
type LaserConfig struct {
	Size     Size          `yaml:"size"`
	Velocity Vec           `yaml:"velocity"`
	Cooldown time.Duration `yaml:"cooldown"`
	TTL      time.Duration `yaml:"ttl"`
	Sprite   int           `yaml:"sprite"`
}

type EnemyConfig struct {
	Velocity      Vec             `yaml:"velocity"`
	SpawnInterval time.Duration   `yaml:"spawn_interval"`
	Laser         LaserConfig     `yaml:"laser"`
	Variants      []VariantConfig `yaml:"variants"`
}

// VariantConfig describes one enemy class. Variant is filled in by Validate.
type VariantConfig struct {
	Name   string `yaml:"name"`
	Size   Size   `yaml:"size"`
	Weight int    `yaml:"weight"`
	Armed  bool   `yaml:"armed"`

	Variant kinds.EnemyVariant `yaml:"-"`
}

type ExplosionConfig struct {
	Size Size `yaml:"size"`
	// Duration defaults to five animation intervals when zero.
	Duration time.Duration `yaml:"duration"`
}

// AtlasConfig points at one sprite sheet and how many frames it holds.
type AtlasConfig struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
}

type AssetsConfig struct {
	Ship      AtlasConfig            `yaml:"ship"`
	Laser     AtlasConfig            `yaml:"laser"`
	Explosion AtlasConfig            `yaml:"explosion"`
	Enemies   map[string]AtlasConfig `yaml:"enemies"`
}

// Default returns the stock arcade tuning.
func Default() *Config {
	laser := func(vy float64, cooldown time.Duration, sprite int) LaserConfig {
		return LaserConfig{
			Size:     Size{Width: 5, Height: 13},
			Velocity: Vec{X: 0, Y: vy},
			Cooldown: cooldown,
			TTL:      3 * time.Second,
			Sprite:   sprite,
		}
	}
	return &Config{
		Seed:          "skyfire",
		TickRate:      60,
		MaxFrameDelta: 250 * time.Millisecond,
		Log:           LogConfig{Level: "info", Encoding: "console"},
		Metrics:       MetricsConfig{Enabled: false, Listen: ":2112"},

		Arena:             Size{Width: 180, Height: 240},
		AnimationInterval: 200 * time.Millisecond,

		Ship: ShipConfig{
			Speed:           100,
			Size:            Size{Width: 16, Height: 24},
			TransitionDelay: 100 * time.Millisecond,
		},
		ShipLaser: laser(100, 400*time.Millisecond, 1),
		Enemy: EnemyConfig{
			Velocity:      Vec{X: 0, Y: -50},
			SpawnInterval: time.Second,
			Laser:         laser(-100, 1500*time.Millisecond, 0),
			Variants: []VariantConfig{
				{Name: "small", Size: Size{Width: 16, Height: 16}, Weight: 6},
				{Name: "medium", Size: Size{Width: 32, Height: 16}, Weight: 3, Armed: true},
				{Name: "big", Size: Size{Width: 32, Height: 32}, Weight: 1, Armed: true},
			},
		},
		Explosion: ExplosionConfig{Size: Size{Width: 16, Height: 16}},
		Assets: AssetsConfig{
			Ship:      AtlasConfig{Path: "spritesheets/ship.png", Frames: 10},
			Laser:     AtlasConfig{Path: "spritesheets/laser-bolts.png", Frames: 4},
			Explosion: AtlasConfig{Path: "spritesheets/explosion.png", Frames: 5},
			Enemies: map[string]AtlasConfig{
				"small":  {Path: "spritesheets/enemy-small.png", Frames: 2},
				"medium": {Path: "spritesheets/enemy-medium.png", Frames: 2},
				"big":    {Path: "spritesheets/enemy-big.png", Frames: 2},
			},
		},
	}
}

// Load reads a YAML file on top of Default. An empty path falls back to the
// SKYFIRE_CONFIG environment variable, and to plain defaults when that is
// unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", path)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Keys
// missing from the document keep their default values; a variants list, when
// present, replaces the default one.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExplosionDuration returns the configured explosion lifetime.
func (c *Config) ExplosionDuration() time.Duration {
	if c.Explosion.Duration > 0 {
		return c.Explosion.Duration
	}
	return 5 * c.AnimationInterval
}

// TickInterval returns the fixed step of the run loop.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Variant returns the configuration of v. Validate guarantees that every
// variant in the spawn table has exactly one entry.
func (c *Config) Variant(v kinds.EnemyVariant) (VariantConfig, bool) {
	for _, vc := range c.Enemy.Variants {
		if vc.Variant == v {
			return vc, true
		}
	}
	return VariantConfig{}, false
}

// Validate checks the configuration and resolves variant names.
func (c *Config) Validate() error {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if c.TickRate <= 0 {
		fail("tick_rate must be positive")
	}
	if c.MaxFrameDelta <= 0 {
		fail("max_frame_delta must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		fail("log.level: %v", err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		fail("log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		fail("metrics.listen is required when metrics are enabled")
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		fail("arena size must be positive")
	}
	if c.AnimationInterval <= 0 {
		fail("animation_interval must be positive")
	}
	if c.Ship.Speed < 0 {
		fail("ship.speed must not be negative")
	}
	if c.Ship.TransitionDelay < 0 {
		fail("ship.transition_delay must not be negative")
	}
	checkSize := func(name string, s Size) {
		if s.Width <= 0 || s.Height <= 0 {
			fail("%s size must be positive", name)
		}
	}
	checkLaser := func(name string, l LaserConfig) {
		checkSize(name, l.Size)
		if l.TTL <= 0 {
			fail("%s.ttl must be positive", name)
		}
		if l.Cooldown < 0 {
			fail("%s.cooldown must not be negative", name)
		}
		if l.Sprite < 0 || l.Sprite >= c.Assets.Laser.Frames {
			fail("%s.sprite %d out of laser atlas range", name, l.Sprite)
		}
	}
	checkSize("ship", c.Ship.Size)
	checkLaser("ship_laser", c.ShipLaser)
	checkLaser("enemy.laser", c.Enemy.Laser)
	checkSize("explosion", c.Explosion.Size)
	if c.Explosion.Duration < 0 {
		fail("explosion.duration must not be negative")
	}
	if c.Enemy.SpawnInterval <= 0 {
		fail("enemy.spawn_interval must be positive")
	}

	checkAtlas := func(name string, a AtlasConfig) {
		if a.Path == "" {
			fail("assets.%s.path is required", name)
		}
		if a.Frames <= 0 {
			fail("assets.%s.frames must be positive", name)
		}
	}
	checkAtlas("ship", c.Assets.Ship)
	checkAtlas("laser", c.Assets.Laser)
	checkAtlas("explosion", c.Assets.Explosion)

	if len(c.Enemy.Variants) == 0 {
		fail("enemy.variants must not be empty")
	}
	seen := make(map[kinds.EnemyVariant]bool, len(c.Enemy.Variants))
	total := 0
	for i := range c.Enemy.Variants {
		vc := &c.Enemy.Variants[i]
		v, err := kinds.ParseEnemyVariant(vc.Name)
		if err != nil {
			fail("enemy.variants[%d]: %v", i, err)
			continue
		}
		if seen[v] {
			fail("enemy.variants[%d]: duplicate variant %s", i, v)
		}
		seen[v] = true
		vc.Variant = v
		checkSize("enemy."+v.String(), vc.Size)
		if vc.Weight <= 0 {
			fail("enemy.%s.weight must be positive, got %d", v, vc.Weight)
		}
		total += max(vc.Weight, 0)
		atlas, ok := c.Assets.Enemies[v.String()]
		if !ok {
			fail("assets.enemies.%s is missing", v)
			continue
		}
		checkAtlas("enemies."+v.String(), atlas)
	}
	if len(c.Enemy.Variants) > 0 && total == 0 {
		fail("enemy spawn weights must not all be zero")
	}

	if len(errs) > 0 {
		return errors.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
