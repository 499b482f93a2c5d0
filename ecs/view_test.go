package ecs_test

import (
	"testing"

	"github.com/plus3/invaders/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moving struct {
	ecs.EntityId
	*Position
	*Velocity
}

func TestViewIter(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2})
	c := storage.Spawn(Position{X: 3}, Velocity{DX: 3}, Health{Current: 1})

	view := ecs.NewView[moving](storage)

	var ids []ecs.EntityId
	for id, m := range view.Iter() {
		assert.Equal(t, id, m.EntityId)
		assert.Equal(t, m.Position.X, m.Velocity.DX)
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{a, c}, ids, "creation order")
	assert.Equal(t, 2, view.Count())
}

func TestViewWritesThrough(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	for m := range ecs.NewView[moving](storage).Values() {
		m.Position.X += m.Velocity.DX
	}

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewOptional(t *testing.T) {
	storage := newTestStorage()
	withHealth := storage.Spawn(Position{}, Health{Current: 5})
	without := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	assert.Equal(t, 2, view.Count())

	got := view.Get(withHealth)
	require.NotNil(t, got)
	require.NotNil(t, got.Health)
	assert.Equal(t, 5, got.Health.Current)

	got = view.Get(without)
	require.NotNil(t, got)
	assert.Nil(t, got.Health)
}

func TestViewFill(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 4}, Velocity{})
	onlyPos := storage.Spawn(Position{})

	view := ecs.NewView[moving](storage)

	var m moving
	require.True(t, view.Fill(id, &m))
	assert.Equal(t, id, m.EntityId)
	assert.Equal(t, float32(4), m.Position.X)

	assert.False(t, view.Fill(onlyPos, &m))

	storage.Delete(id)
	assert.False(t, view.Fill(id, &m), "deleted entity")
	assert.Nil(t, view.Get(id))
}

func TestViewRejectsBadShapes(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQueryRefreshesOnExecute(t *testing.T) {
	storage := newTestStorage()
	q := ecs.NewQuery[moving](storage)

	assert.Panics(t, func() { q.Values() }, "Execute not called yet")

	q.Execute()
	assert.Zero(t, q.Len())

	first := storage.Spawn(Position{}, Velocity{})
	assert.Zero(t, q.Len(), "cached until the next Execute")

	q.Execute()
	assert.Equal(t, 1, q.Len())

	storage.Spawn(Position{}, Velocity{}, Frozen{})
	storage.Delete(first)
	q.Execute()
	assert.Equal(t, 1, q.Len(), "new archetype is picked up and deleted entity dropped")

	for id, m := range q.Iter() {
		assert.NotEqual(t, first, id)
		assert.Equal(t, id, m.EntityId)
	}
}

func TestQuerySingle(t *testing.T) {
	storage := newTestStorage()
	q := ecs.NewQuery[struct {
		ecs.EntityId
		*Name
	}](storage)

	q.Execute()
	_, ok := q.Single()
	assert.False(t, ok)

	id := storage.Spawn(Name{Value: "solo"})
	q.Execute()
	item, ok := q.Single()
	require.True(t, ok)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, "solo", item.Name.Value)

	storage.Spawn(Name{Value: "second"})
	q.Execute()
	_, ok = q.Single()
	assert.False(t, ok, "two matches")
}
