package game

import (
	"github.com/plus3/invaders/ecs"
	"go.uber.org/zap"
)

// State is the game-flow state that decides which systems do work.
type State uint8

const (
	// StateSplash exists for a title screen; nothing enters it today.
	StateSplash State = iota
	StateGame
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateSplash:
		return "splash"
	case StateGame:
		return "game"
	case StateEnd:
		return "end"
	}
	return "unknown"
}

// Flow is the game-flow state machine. Transitions requested during a tick are applied
// by FlowSystem at the end of that tick.
type Flow struct {
	Current State
	next    State
	pending bool
}

// Request schedules a transition to s. The last request in a tick wins.
func (f *Flow) Request(s State) {
	f.next = s
	f.pending = true
}

// Pending reports the requested state, if any.
func (f *Flow) Pending() (State, bool) {
	return f.next, f.pending
}

// FlowSystem applies pending transitions: leaving Game wipes every gameplay entity,
// entering Game starts a fresh session.
type FlowSystem struct {
	Flow    ecs.Singleton[Flow]
	Session ecs.Singleton[Session]

	maxLife uint32
	log     *zap.Logger
}

func (s *FlowSystem) Execute(frame *ecs.UpdateFrame) {
	flow := s.Flow.Get()
	next, ok := flow.Pending()
	if !ok {
		return
	}
	flow.pending = false
	if next == flow.Current {
		return
	}

	prev := flow.Current
	flow.Current = next
	s.log.Info("game flow transition", zap.Stringer("from", prev), zap.Stringer("to", next))

	if prev == StateGame {
		// Runs after this frame's spawns so nothing queued this tick survives.
		storage := frame.Storage
		frame.Commands.Defer(func() {
			n := despawnGameplay(storage)
			s.log.Debug("despawned gameplay entities", zap.Int("count", n))
		})
	}

	if next == StateGame {
		s.Session.Get().Reset(s.maxLife)
	}
}

func despawnAll[T any](storage *ecs.Storage) int {
	var ids []ecs.EntityId
	for id := range ecs.NewView[struct{ C *T }](storage).Iter() {
		ids = append(ids, id)
	}

	n := 0
	for _, id := range ids {
		if storage.Delete(id) {
			n++
		}
	}
	return n
}

// despawnGameplay removes every player, enemy, laser and explosion, including
// explosion requests that have not been turned into animations yet.
func despawnGameplay(storage *ecs.Storage) int {
	return despawnAll[Player](storage) +
		despawnAll[Enemy](storage) +
		despawnAll[Laser](storage) +
		despawnAll[Explosion](storage) +
		despawnAll[ExplosionRequest](storage)
}

// RestartSystem returns to Game from End when restart is pressed.
type RestartSystem struct {
	Flow  ecs.Singleton[Flow]
	Input ecs.Singleton[Input]

	log *zap.Logger
}

func (s *RestartSystem) Execute(frame *ecs.UpdateFrame) {
	flow := s.Flow.Get()
	if flow.Current != StateEnd || !s.Input.Get().Restart {
		return
	}
	s.log.Info("restart game")
	flow.Request(StateGame)
}
