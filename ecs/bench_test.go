package ecs_test

import (
	"testing"

	"github.com/plus3/invaders/ecs"
)

func BenchmarkSpawnDelete(b *testing.B) {
	storage := newTestStorage()

	for b.Loop() {
		id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
		storage.Delete(id)
	}
}

func BenchmarkReadComponent(b *testing.B) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})

	for b.Loop() {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := newTestStorage()
	for i := range 1000 {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
		if i%3 == 0 {
			storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1}, Health{Max: 10})
		}
	}
	q := ecs.NewQuery[moving](storage)

	for b.Loop() {
		q.Execute()
		for m := range q.Values() {
			m.Position.X += m.Velocity.DX
		}
	}
}

func BenchmarkCommandsFlush(b *testing.B) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ExpirySystem{})
	scheduler.Register(&commandSystem{fn: func(frame *ecs.UpdateFrame) {
		for range 100 {
			frame.Commands.Spawn(Position{}, Lifetime{Ticks: 2})
		}
	}})

	for b.Loop() {
		scheduler.Once(1.0 / 60)
	}
}
