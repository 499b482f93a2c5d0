package game

import "github.com/plus3/invaders/ecs"

// ExplosionSpawnSystem turns every ExplosionRequest into an explosion animation at the
// requested position and consumes the request.
type ExplosionSpawnSystem struct {
	Requests ecs.Query[struct {
		ecs.EntityId
		*ExplosionRequest
	}]
	Flow ecs.Singleton[Flow]

	period float64
}

func (s *ExplosionSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	for req := range s.Requests.Values() {
		frame.Commands.Spawn(
			Position{X: req.ExplosionRequest.X, Y: req.ExplosionRequest.Y},
			Explosion{},
			ExplosionTimer{Period: s.period},
			Sprite{Kind: SpriteExplosion},
		)
		frame.Commands.Delete(req.EntityId)
	}
}

// ExplosionAnimationSystem advances explosion timers and removes an explosion once
// its last sprite cell has been shown.
type ExplosionAnimationSystem struct {
	Explosions ecs.Query[struct {
		ecs.EntityId
		*ExplosionTimer
		*Explosion
	}]
	Flow ecs.Singleton[Flow]
}

func (s *ExplosionAnimationSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	for e := range s.Explosions.Values() {
		timer := e.ExplosionTimer
		timer.Elapsed += frame.DeltaTime
		if timer.Period <= 0 || timer.Elapsed < timer.Period {
			continue
		}

		timer.Elapsed -= timer.Period
		timer.Frame++
		if timer.Frame >= ExplosionLen {
			frame.Commands.Delete(e.EntityId)
		}
	}
}
