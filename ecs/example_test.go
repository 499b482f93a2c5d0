package ecs_test

import (
	"fmt"

	"github.com/plus3/invaders/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Lifetime struct {
	Ticks int
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*Speed
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
}

type ExpirySystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Lifetime
	}]
}

func (s *ExpirySystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Lifetime.Ticks--
		if entity.Lifetime.Ticks <= 0 {
			frame.Commands.Delete(entity.EntityId)
		}
	}
}

// ExampleScheduler runs two systems in registration order. Query fields are filled in
// by Register and refreshed before each system runs; deletions queued through
// Commands are applied once every system has run.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Lifetime](registry)
	storage := ecs.NewStorage(registry)

	shot := storage.Spawn(Transform{}, Speed{DX: 10, DY: 5}, Lifetime{Ticks: 2})
	storage.Spawn(Transform{X: 100}, Speed{DX: -10})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&ExpirySystem{})

	scheduler.Once(0.5)
	t := ecs.ReadComponent[Transform](storage, shot)
	fmt.Printf("after 1 frame: (%.0f, %.1f) alive=%v\n", t.X, t.Y, storage.Alive(shot))

	scheduler.Once(0.5)
	fmt.Printf("after 2 frames: alive=%v entities=%d\n", storage.Alive(shot), storage.EntityCount())

	// Output:
	// after 1 frame: (5, 2.5) alive=true
	// after 2 frames: alive=false entities=1
}

// ExampleView shows a view with an EntityId field and an optional component.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Lifetime](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Transform{X: 1}, Lifetime{Ticks: 3})
	storage.Spawn(Transform{X: 2})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Transform
		Lifetime *Lifetime `ecs:"optional"`
	}](storage)

	for e := range view.Values() {
		if e.Lifetime != nil {
			fmt.Printf("x=%.0f expires in %d\n", e.X, e.Lifetime.Ticks)
		} else {
			fmt.Printf("x=%.0f lives forever\n", e.X)
		}
	}

	// Output:
	// x=1 expires in 3
	// x=2 lives forever
}

// ExampleSingleton keeps world-wide state outside of any entity.
func ExampleSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	score := ecs.NewSingleton(storage, Counters{Lives: 3})
	score.Get().Score += 10

	var read *Counters
	storage.ReadSingleton(&read)
	fmt.Println(read.Score, read.Lives)

	// Output:
	// 10 3
}
