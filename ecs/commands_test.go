package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/invaders/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandSystem runs fn once per frame with the frame's command buffer.
type commandSystem struct {
	fn func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.fn(frame)
}

func runFrame(storage *ecs.Storage, fn func(frame *ecs.UpdateFrame)) {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandSystem{fn: fn})
	scheduler.Once(1.0 / 60)
}

func TestCommandsAreDeferred(t *testing.T) {
	storage := newTestStorage()
	victim := storage.Spawn(Position{X: 1})

	runFrame(storage, func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Name{Value: "new"})
		frame.Commands.Delete(victim)

		assert.True(t, storage.Alive(victim), "delete waits for flush")
		assert.Equal(t, 1, storage.EntityCount(), "spawn waits for flush")
	})

	assert.False(t, storage.Alive(victim))
	assert.Equal(t, 1, ecs.NewView[struct{ *Name }](storage).Count())
}

func TestCommandsDeleteTwice(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})
	reused := ecs.EntityId(0)

	runFrame(storage, func(frame *ecs.UpdateFrame) {
		assert.False(t, frame.Commands.Deleting(id))
		frame.Commands.Delete(id)
		frame.Commands.Delete(id)
		assert.True(t, frame.Commands.Deleting(id))

		frame.Commands.Defer(func() {
			reused = storage.Spawn(Position{X: 7})
		})
	})

	require.NotZero(t, reused)
	assert.Equal(t, id.Index(), reused.Index())
	assert.True(t, storage.Alive(reused), "double delete must not free the reused slot")
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{}, Velocity{})
	var sawSpawn bool

	runFrame(storage, func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			sawSpawn = ecs.NewView[struct{ *Score }](storage).Count() == 1
		})
		frame.Commands.Spawn(Score(1))
		frame.Commands.RemoveComponent(id, reflect.TypeFor[Velocity]())
	})

	assert.True(t, sawSpawn, "defers run after spawns")
	assert.Equal(t, 1, ecs.NewView[struct{ *Position }](storage).Count())
	assert.Zero(t, ecs.NewView[struct{ *Velocity }](storage).Count())
}

func TestCommandsAddAfterDelete(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})

	runFrame(storage, func(frame *ecs.UpdateFrame) {
		frame.Commands.AddComponent(id, Health{Current: 1})
		frame.Commands.Delete(id)
	})

	assert.Zero(t, storage.EntityCount(), "add on a deleted entity is dropped")
}

func TestCommandsAddComponent(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})

	runFrame(storage, func(frame *ecs.UpdateFrame) {
		frame.Commands.AddComponent(id, Health{Current: 3})
	})

	healthy := ecs.NewView[struct {
		*Position
		*Health
	}](storage)
	require.Equal(t, 1, healthy.Count())
	for h := range healthy.Values() {
		assert.Equal(t, 3, h.Health.Current)
	}
}
