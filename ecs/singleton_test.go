package ecs_test

import (
	"testing"

	"github.com/plus3/invaders/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Counters struct {
	Score int
	Lives int
}

func TestSingletonInitializer(t *testing.T) {
	storage := newTestStorage()

	first := ecs.NewSingleton(storage, Counters{Lives: 3})
	second := ecs.NewSingleton(storage, Counters{Lives: 99})

	assert.Equal(t, 3, second.Get().Lives, "initializer only applies once")
	first.Get().Score = 10
	assert.Equal(t, 10, second.Get().Score)
}

func TestSingletonMissing(t *testing.T) {
	var s ecs.Singleton[Counters]
	s.Init(newTestStorage())

	assert.False(t, s.Exists())
	assert.Nil(t, s.Get())
}

func TestAddSingletonKeepsPointers(t *testing.T) {
	storage := newTestStorage()
	s := ecs.NewSingleton(storage, Counters{Lives: 3})
	ptr := s.Get()

	storage.AddSingleton(Counters{Lives: 1, Score: 5})

	assert.Same(t, ptr, s.Get())
	assert.Equal(t, Counters{Lives: 1, Score: 5}, *ptr)
}

func TestAddSingletonLateInit(t *testing.T) {
	storage := newTestStorage()
	var s ecs.Singleton[Counters]
	s.Init(storage)

	storage.AddSingleton(&Counters{Lives: 2})

	require.True(t, s.Exists())
	assert.Equal(t, 2, s.Get().Lives)
}

func TestReadSingleton(t *testing.T) {
	storage := newTestStorage()

	var counters *Counters
	assert.False(t, storage.ReadSingleton(&counters))
	assert.Nil(t, counters)

	ecs.NewSingleton(storage, Counters{Score: 4})
	require.True(t, storage.ReadSingleton(&counters))
	assert.Equal(t, 4, counters.Score)

	counters.Score++
	assert.Equal(t, 5, ecs.NewSingleton[Counters](storage).Get().Score)

	assert.Panics(t, func() { storage.ReadSingleton(counters) })
}
