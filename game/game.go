// Package game is the simulation core of the shooter: player, formation enemies,
// lasers, collisions, explosions and the Splash/Game/End flow, driven one fixed
// TimeStep at a time on top of the ecs package.
package game

import (
	"math/rand/v2"

	"github.com/plus3/invaders/config"
	"github.com/plus3/invaders/ecs"
	"go.uber.org/zap"
)

// Snapshot is the read-only state a presentation layer needs for its HUD.
type Snapshot struct {
	Score      uint32
	PlayerLife uint32
	EnemyCount uint32
	State      State
	Tick       uint64
}

type options struct {
	rng        *rand.Rand
	components []func(*ecs.ComponentRegistry)
	systems    []ecs.System
}

type Option func(*options)

// WithRand replaces the generator seeded from the gameplay config.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithComponents registers extra component types, such as an overlay's.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(o *options) { o.components = append(o.components, register) }
}

// WithSystems appends systems that run after the core systems on every step.
func WithSystems(systems ...ecs.System) Option {
	return func(o *options) { o.systems = append(o.systems, systems...) }
}

type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	input     *ecs.Singleton[Input]
	session   *ecs.Singleton[Session]
	flow      *ecs.Singleton[Flow]
	playfield *ecs.Singleton[Playfield]

	log *zap.Logger
}

// New builds a game that starts directly in StateGame with a fresh session.
func New(cfg config.Gameplay, field Playfield, log *zap.Logger, opts ...Option) *Game {
	if log == nil {
		log = zap.NewNop()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = newRand(cfg.Seed)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	for _, register := range o.components {
		register(registry)
	}

	storage := ecs.NewStorage(registry)
	g := &Game{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[Input](storage),
		session:   ecs.NewSingleton(storage, newSession(cfg.PlayerMaxLife)),
		flow:      ecs.NewSingleton(storage, Flow{Current: StateGame}),
		playfield: ecs.NewSingleton(storage, field),
		log:       log,
	}
	ecs.NewSingleton[Clock](storage)

	for _, system := range coreSystems(cfg, o.rng, log) {
		g.scheduler.Register(system)
	}
	for _, system := range o.systems {
		g.scheduler.Register(system)
	}

	log.Info("game created",
		zap.Float32("half_width", field.HalfWidth),
		zap.Float32("half_height", field.HalfHeight),
		zap.Uint32("enemy_max", cfg.EnemyMax),
		zap.Uint32("player_max_life", cfg.PlayerMaxLife))
	return g
}

// coreSystems lists the simulation systems in tick order: spawners, movement,
// collisions, explosions, then flow control.
func coreSystems(cfg config.Gameplay, rng *rand.Rand, log *zap.Logger) []ecs.System {
	return []ecs.System{
		&ClockSystem{},
		&PlayerSpawnSystem{respawnDelay: cfg.RespawnDelay.Seconds()},
		&PlayerInputSystem{},
		&PlayerFireSystem{fireInterval: cfg.FireInterval.Seconds()},
		&EnemySpawnSystem{
			maker:         NewFormationMaker(rng, cfg.FormationMembersMax),
			enemyMax:      cfg.EnemyMax,
			spawnInterval: cfg.EnemySpawnInterval.Seconds(),
			log:           log,
		},
		&EnemyFireSystem{rng: rng, chance: cfg.EnemyFireChance},
		&FormationMovementSystem{},
		&MovementSystem{},
		&PlayerLaserHitEnemySystem{},
		&EnemyLaserHitPlayerSystem{log: log},
		&ExplosionSpawnSystem{period: cfg.ExplosionFrameTime.Seconds()},
		&ExplosionAnimationSystem{},
		&RestartSystem{log: log},
		&FlowSystem{maxLife: cfg.PlayerMaxLife, log: log},
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Step advances the simulation by one TimeStep with the given controls.
func (g *Game) Step(in Input) {
	*g.input.Get() = in
	g.scheduler.Once(float64(TimeStep))
}

func (g *Game) Snapshot() Snapshot {
	session := g.session.Get()
	return Snapshot{
		Score:      session.Score,
		PlayerLife: session.PlayerLife,
		EnemyCount: session.EnemyCount,
		State:      g.flow.Get().Current,
		Tick:       g.scheduler.Frames(),
	}
}

// Resize changes the playfield used by spawners and the despawn boundary.
func (g *Game) Resize(field Playfield) {
	*g.playfield.Get() = field
}

// Storage exposes the entity storage to renderers. Callers must not mutate it.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game) SchedulerStats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}
