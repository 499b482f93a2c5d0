package ecs

// EntityId encodes the archetype ID (upper 32 bits), the slot generation (12 bits)
// and the slot index (lower 20 bits).
//
// A slot's generation is bumped every time the slot is freed, so an id that outlives
// its entity no longer resolves and deleting it twice is a no-op.
type EntityId uint64

const (
	indexBits      = 20
	generationBits = 12

	indexMask      = 1<<indexBits - 1
	generationMask = 1<<generationBits - 1

	// MaxArchetypeEntities is the number of live slots a single archetype can address.
	MaxArchetypeEntities = 1 << indexBits
)

// NewEntityId creates an EntityId from an archetype ID, slot index and slot generation
func NewEntityId(archetypeId uint32, index uint32, generation uint32) EntityId {
	low := (generation&generationMask)<<indexBits | index&indexMask
	return EntityId(uint64(archetypeId)<<32 | uint64(low))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e) >> indexBits & generationMask
}
