package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/invaders/ecs"
	"go.uber.org/zap"
)

// FormationMaker hands out formations, reusing the current one until it has maxMembers
// members and then rolling a new flight path.
type FormationMaker struct {
	rng        *rand.Rand
	maxMembers uint32

	current *Formation
	members uint32
	groups  uint32
}

func NewFormationMaker(rng *rand.Rand, maxMembers uint32) *FormationMaker {
	return &FormationMaker{rng: rng, maxMembers: max(maxMembers, 1)}
}

// Make returns the formation for the next enemy.
func (m *FormationMaker) Make(field Playfield) Formation {
	if m.current != nil && m.members < m.maxMembers {
		m.members++
		return *m.current
	}

	wSpan := field.HalfWidth + 100
	hSpan := field.HalfHeight + 100
	x := -wSpan
	if m.rng.IntN(2) == 0 {
		x = wSpan
	}
	y := m.uniform(-hSpan, hSpan)

	pivotW := field.HalfWidth / 2
	pivotH := field.HalfHeight*2/3 - 50
	pivot := [2]float32{m.uniform(-pivotW, pivotW), m.uniform(0, pivotH)}

	m.groups++
	f := Formation{
		Group:  m.groups,
		Start:  [2]float32{x, y},
		Radius: [2]float32{m.uniform(80, 150), 100},
		Pivot:  pivot,
		Speed:  BaseSpeed,
		Angle:  float32(math.Atan2(float64(y-pivot[1]), float64(x-pivot[0]))),
	}
	m.current = &f
	m.members = 1
	return f
}

// Reset forgets the current formation.
func (m *FormationMaker) Reset() {
	m.current = nil
	m.members = 0
}

func (m *FormationMaker) uniform(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float32()*(hi-lo)
}

// EnemySpawnSystem adds one enemy every spawnInterval seconds while fewer than
// enemyMax are alive.
type EnemySpawnSystem struct {
	Session   ecs.Singleton[Session]
	Playfield ecs.Singleton[Playfield]
	Flow      ecs.Singleton[Flow]

	maker         *FormationMaker
	enemyMax      uint32
	spawnInterval float64
	sinceSpawn    float64
	log           *zap.Logger
}

func (s *EnemySpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		s.sinceSpawn = 0
		s.maker.Reset()
		return
	}

	s.sinceSpawn += frame.DeltaTime
	if s.sinceSpawn < s.spawnInterval {
		return
	}
	s.sinceSpawn = 0

	session := s.Session.Get()
	if session.EnemyCount >= s.enemyMax {
		return
	}

	f := s.maker.Make(*s.Playfield.Get())
	frame.Commands.Spawn(
		Position{X: f.Start[0], Y: f.Start[1]},
		EnemySize,
		Enemy{},
		f,
		Sprite{Kind: SpriteEnemy},
	)
	session.EnemyCount++
	s.log.Debug("enemy spawned",
		zap.Uint32("group", f.Group),
		zap.Uint32("enemies", session.EnemyCount))
}

// FormationMovementSystem flies every enemy around its formation's ellipse, never
// covering more than TimeStep*Speed per tick.
type FormationMovementSystem struct {
	Enemies ecs.Query[struct {
		*Position
		*Formation
		*Enemy
	}]
	Flow ecs.Singleton[Flow]
}

func (s *FormationMovementSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	for e := range s.Enemies.Values() {
		stepFormation(e.Position, e.Formation)
	}
}

func stepFormation(pos *Position, f *Formation) {
	maxDistance := TimeStep * f.Speed

	dir := float32(-1)
	if f.Start[0] < 0 {
		dir = 1
	}

	radius := min(f.Radius[0], f.Radius[1])
	angle := f.Angle
	if radius > 0 {
		angle += dir * f.Speed * TimeStep / (radius * math.Pi / 2)
	}

	dstX := f.Radius[0]*float32(math.Cos(float64(angle))) + f.Pivot[0]
	dstY := f.Radius[1]*float32(math.Sin(float64(angle))) + f.Pivot[1]

	dx := pos.X - dstX
	dy := pos.Y - dstY
	distance := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	var ratio float32
	if distance != 0 {
		ratio = maxDistance / distance
	}

	x := pos.X - dx*ratio
	if dx > 0 {
		x = max(x, dstX)
	} else {
		x = min(x, dstX)
	}
	y := pos.Y - dy*ratio
	if dy > 0 {
		y = max(y, dstY)
	} else {
		y = min(y, dstY)
	}

	if distance < maxDistance*f.Speed/20 {
		f.Angle = angle
	}

	pos.X, pos.Y = x, y
}

// EnemyFireSystem rolls once per enemy per tick; a hit fires a laser straight down.
type EnemyFireSystem struct {
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Enemy
	}]
	Flow ecs.Singleton[Flow]

	rng    *rand.Rand
	chance float64
}

func (s *EnemyFireSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame || s.chance <= 0 {
		return
	}

	for e := range s.Enemies.Values() {
		if frame.Commands.Deleting(e.EntityId) || s.rng.Float64() >= s.chance {
			continue
		}
		frame.Commands.Spawn(
			Position{X: e.Position.X, Y: e.Position.Y - EnemySize.H*EnemySize.Scale*0.4},
			Velocity{X: 0, Y: -1},
			Movable{AutoDespawn: true},
			EnemyLaserSize,
			Laser{},
			FromEnemy{},
			Sprite{Kind: SpriteEnemyLaser},
		)
	}
}
