package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that carries exactly the same set of component types.
// All columns are appended and deleted in lockstep, so a slot index addresses the same
// entity in every column.
type Archetype struct {
	id          uint32
	types       []reflect.Type
	storages    []iComponentStorage
	generations []uint32
	count       int
}

// newArchetype creates a new archetype with the given ID and sorted component types
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn stores the components in a free slot and returns the new entity's id.
func (a *Archetype) spawn(components []any) EntityId {
	storagePos := -1
	for _, comp := range components {
		compType := componentType(comp)
		for idx, typ := range a.types {
			if typ == compType {
				storagePos = a.storages[idx].Append(comp)
			}
		}
	}
	if storagePos < 0 {
		panic("archetype spawn did not match any component type")
	}
	if storagePos >= MaxArchetypeEntities {
		panic(fmt.Sprintf("archetype 0x%X is full (%d entities)", a.id, MaxArchetypeEntities))
	}

	for len(a.generations) <= storagePos {
		a.generations = append(a.generations, 0)
	}
	a.count++
	return NewEntityId(a.id, uint32(storagePos), a.generations[storagePos])
}

// alive reports whether id still names the entity living in its slot.
func (a *Archetype) alive(id EntityId) bool {
	index := int(id.Index())
	if index >= len(a.generations) || len(a.storages) == 0 {
		return false
	}
	return a.generations[index] == id.Generation() && a.storages[0].Has(index)
}

// delete frees the entity's slot. It reports false when the id is stale.
func (a *Archetype) delete(id EntityId) bool {
	if !a.alive(id) {
		return false
	}

	index := int(id.Index())
	for _, storage := range a.storages {
		storage.Delete(index)
	}
	a.generations[index] = (a.generations[index] + 1) & generationMask
	a.count--
	return true
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// component returns a pointer to the entity's component of the given type, or nil.
func (a *Archetype) component(id EntityId, compType reflect.Type) any {
	if !a.alive(id) {
		return nil
	}
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(id.Index()))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype
func (a *Archetype) Len() int {
	return a.count
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index), a.generations[index])) {
				return
			}
		}
	}
}
