package game

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/invaders/ecs"
	"go.uber.org/zap"
)

// handledSet holds the ids already consumed by one collision pass so nothing is
// despawned or scored twice.
type handledSet struct {
	ids *intmap.Map[ecs.EntityId, struct{}]
}

func newHandledSet() handledSet {
	return handledSet{ids: intmap.New[ecs.EntityId, struct{}](32)}
}

func (h handledSet) add(ids ...ecs.EntityId) {
	for _, id := range ids {
		h.ids.Put(id, struct{}{})
	}
}

func (h handledSet) has(id ecs.EntityId) bool {
	_, ok := h.ids.Get(id)
	return ok
}

func (h handledSet) reset() {
	h.ids.Clear()
}

// PlayerLaserHitEnemySystem lets each player laser destroy at most one enemy per tick.
type PlayerLaserHitEnemySystem struct {
	Lasers ecs.Query[struct {
		ecs.EntityId
		*Position
		*SpriteSize
		*Laser
		*FromPlayer
	}]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*SpriteSize
		*Enemy
	}]
	Session ecs.Singleton[Session]
	Flow    ecs.Singleton[Flow]

	handled handledSet
}

func (s *PlayerLaserHitEnemySystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}
	if s.handled.ids == nil {
		s.handled = newHandledSet()
	}
	s.handled.reset()

	session := s.Session.Get()

	for laser := range s.Lasers.Values() {
		if frame.Commands.Deleting(laser.EntityId) {
			continue
		}

		for enemy := range s.Enemies.Values() {
			if s.handled.has(enemy.EntityId) || frame.Commands.Deleting(enemy.EntityId) {
				continue
			}
			if !collideSprites(laser.Position, laser.SpriteSize, enemy.Position, enemy.SpriteSize) {
				continue
			}

			frame.Commands.Delete(enemy.EntityId)
			frame.Commands.Delete(laser.EntityId)
			s.handled.add(enemy.EntityId, laser.EntityId)
			session.EnemyDestroyed()

			frame.Commands.Spawn(ExplosionRequest{X: enemy.Position.X, Y: enemy.Position.Y})
			break
		}
	}
}

// EnemyLaserHitPlayerSystem processes at most one hit on the player per tick and ends
// the round when the last life is lost.
type EnemyLaserHitPlayerSystem struct {
	Lasers ecs.Query[struct {
		ecs.EntityId
		*Position
		*SpriteSize
		*Laser
		*FromEnemy
	}]
	Player ecs.Query[struct {
		ecs.EntityId
		*Position
		*SpriteSize
		*Player
	}]
	Session ecs.Singleton[Session]
	Flow    ecs.Singleton[Flow]
	Clock   ecs.Singleton[Clock]

	log *zap.Logger
}

func (s *EnemyLaserHitPlayerSystem) Execute(frame *ecs.UpdateFrame) {
	flow := s.Flow.Get()
	if flow.Current != StateGame {
		return
	}

	player, ok := s.Player.Single()
	if !ok || frame.Commands.Deleting(player.EntityId) {
		return
	}

	for laser := range s.Lasers.Values() {
		if frame.Commands.Deleting(laser.EntityId) {
			continue
		}
		if !collideSprites(laser.Position, laser.SpriteSize, player.Position, player.SpriteSize) {
			continue
		}

		session := s.Session.Get()
		frame.Commands.Delete(player.EntityId)
		session.Player.Shot(s.Clock.Get().Elapsed)
		remaining := session.LoseLife()
		s.log.Debug("player destroyed", zap.Uint32("lives", remaining))

		if remaining == 0 {
			flow.Request(StateEnd)
		}

		frame.Commands.Delete(laser.EntityId)
		frame.Commands.Spawn(ExplosionRequest{X: player.Position.X, Y: player.Position.Y})
		return
	}
}
