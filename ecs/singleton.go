package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If initializer is provided and the singleton doesn't exist in storage,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		entry = storage.putSingleton(componentType, reflect.ValueOf(&value).Elem())
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init initializes the Singleton with a storage reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}

// AddSingleton stores value as the singleton of its type, replacing the contents of
// an existing one. Pointers already handed out keep pointing at the live value.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	s.putSingleton(v.Type(), v)
}

func (s *Storage) putSingleton(t reflect.Type, value reflect.Value) *singletonEntry {
	if entry := s.getSingletonEntry(t); entry != nil {
		reflect.NewAt(t, entry.dataPtr).Elem().Set(value)
		return entry
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(value)
	entry := &singletonEntry{typ: t, dataPtr: ptr.UnsafePointer()}
	s.singletons.Put(typeId(t), entry)
	return entry
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := s.singletons.Get(typeId(t))
	if !ok {
		return nil
	}
	return entry
}

// ReadSingleton points target (a **T) at the singleton of type T.
// It reports false and leaves target untouched when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	elemType := v.Elem().Type().Elem()
	entry := s.getSingletonEntry(elemType)
	if entry == nil {
		return false
	}
	v.Elem().Set(reflect.NewAt(elemType, entry.dataPtr))
	return true
}

// singletonTypes returns the sorted type names of all singletons
func (s *Storage) singletonTypes() []string {
	names := make([]string, 0, s.singletons.Len())
	for _, entry := range s.singletons.All() {
		names = append(names, entry.typ.String())
	}
	sort.Strings(names)
	return names
}
