package ecs_test

import (
	"testing"

	"github.com/plus3/invaders/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Gravity struct {
	Y float32
}

type moveSystem struct {
	Movers  ecs.Query[moving]
	Gravity ecs.Singleton[Gravity]

	seen []int
}

func (s *moveSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Gravity.Get()
	for m := range s.Movers.Values() {
		m.Velocity.DY += g.Y
		m.Position.X += m.Velocity.DX
		m.Position.Y += m.Velocity.DY
	}
	s.seen = append(s.seen, s.Movers.Len())
}

type spawnerSystem struct{}

func (spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
}

func TestSchedulerInitializesFields(t *testing.T) {
	storage := newTestStorage()
	ecs.NewSingleton(storage, Gravity{Y: -1})
	id := storage.Spawn(Position{}, Velocity{DX: 2})

	sys := &moveSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(sys)

	scheduler.Once(1)
	scheduler.Once(1)

	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, Position{X: 4, Y: -3}, *pos)
	assert.Equal(t, uint64(2), scheduler.Frames())
}

func TestSchedulerRefreshesQueriesPerSystem(t *testing.T) {
	storage := newTestStorage()
	ecs.NewSingleton[Gravity](storage)

	mover := &moveSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(spawnerSystem{})
	scheduler.Register(mover)

	for range 3 {
		scheduler.Once(1)
	}

	// Spawns land at the end of each frame, so the mover sees them a frame later.
	assert.Equal(t, []int{0, 1, 2}, mover.seen)
	assert.Equal(t, 3, storage.EntityCount())
}

func TestSchedulerFrameData(t *testing.T) {
	storage := newTestStorage()
	var ticks []uint64
	var deltas []float64

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandSystem{fn: func(frame *ecs.UpdateFrame) {
		ticks = append(ticks, frame.Tick)
		deltas = append(deltas, frame.DeltaTime)
		assert.Same(t, storage, frame.Storage)
	}})

	scheduler.Once(0.5)
	scheduler.Once(0.25)

	assert.Equal(t, []uint64{1, 2}, ticks)
	assert.Equal(t, []float64{0.5, 0.25}, deltas)
}

func TestSchedulerStats(t *testing.T) {
	storage := newTestStorage()
	ecs.NewSingleton[Gravity](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(spawnerSystem{})
	scheduler.Register(&moveSystem{})

	for range 4 {
		scheduler.Once(1)
	}

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(4), stats.Frames)
	assert.Equal(t, int64(8), stats.TotalExecutions)

	assert.Equal(t, "spawnerSystem", stats.Systems[0].Name)
	assert.Equal(t, "moveSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(4), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/4, s.AvgDuration)
	}
}
