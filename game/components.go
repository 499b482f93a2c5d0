package game

import "github.com/plus3/invaders/ecs"

// Position is the center of an entity in playfield units, origin at the center of
// the playfield, y pointing up.
type Position struct {
	X, Y float32
}

// Velocity is in playfield units per tick, before BaseSpeed scaling.
type Velocity struct {
	X, Y float32
}

// SpriteSize is the unscaled sprite size; Scale is applied on both axes.
type SpriteSize struct {
	W, H  float32
	Scale float32
}

// Extent returns the scaled width and height used for collision.
func (s SpriteSize) Extent() (float32, float32) {
	return s.W * s.Scale, s.H * s.Scale
}

// Movable marks an entity for the movement integrator. AutoDespawn removes the entity
// once it leaves the playfield by more than DespawnMargin.
type Movable struct {
	AutoDespawn bool
}

type Player struct{}

type Enemy struct{}

type Laser struct{}

// FromPlayer and FromEnemy tag a laser's origin and select its collision pair.
type FromPlayer struct{}

type FromEnemy struct{}

// Formation is the flight path shared by the members of one enemy group.
type Formation struct {
	Group  uint32
	Start  [2]float32
	Radius [2]float32
	Pivot  [2]float32
	Speed  float32
	Angle  float32
}

// ExplosionRequest asks the explosion spawner for an animation at X, Y.
type ExplosionRequest struct {
	X, Y float32
}

type Explosion struct{}

// ExplosionTimer drives the sprite-sheet cell of an explosion.
type ExplosionTimer struct {
	Elapsed float64
	Period  float64
	Frame   int
}

type SpriteKind uint8

const (
	SpritePlayer SpriteKind = iota
	SpritePlayerLaser
	SpriteEnemy
	SpriteEnemyLaser
	SpriteExplosion
)

func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpritePlayerLaser:
		return "player-laser"
	case SpriteEnemy:
		return "enemy"
	case SpriteEnemyLaser:
		return "enemy-laser"
	case SpriteExplosion:
		return "explosion"
	}
	return "unknown"
}

// Sprite is the request to materialise a visual for the entity; frontends draw every
// entity that has one.
type Sprite struct {
	Kind SpriteKind
}

// RegisterComponents registers every component type the simulation spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[SpriteSize](registry)
	ecs.RegisterComponent[Movable](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Laser](registry)
	ecs.RegisterComponent[FromPlayer](registry)
	ecs.RegisterComponent[FromEnemy](registry)
	ecs.RegisterComponent[Formation](registry)
	ecs.RegisterComponent[ExplosionRequest](registry)
	ecs.RegisterComponent[Explosion](registry)
	ecs.RegisterComponent[ExplosionTimer](registry)
	ecs.RegisterComponent[Sprite](registry)
}
