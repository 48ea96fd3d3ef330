package silo

import (
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

// Registry is the public façade over the archetype storage engine: it
// owns the entity pool, the archetype graph, and the entity location
// map, and is the sole entry point mutating code and views go through.
type Registry struct {
	pool  *entityPool
	graph *archetypeGraph
	locs  *locationMap
	queue *operationQueue

	locks         mask.Mask256
	nextLockBit   uint32
	sharedOpen    int
	exclusiveOpen bool

	relationships map[uint32]*relationshipInfo
}

// RegistryOption configures a Registry at construction time, following
// the functional-options idiom used elsewhere in the package's builder
// chains.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	chunkBytes int
}

// WithChunkBytes overrides the registry's per-archetype chunk capacity.
// Defaults to Config.chunkBytes (16 KiB) when unset.
func WithChunkBytes(n int) RegistryOption {
	return func(o *registryOptions) { o.chunkBytes = n }
}

// NewRegistry constructs an empty Registry with the empty-set archetype
// pre-created as the graph's root.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{chunkBytes: Config.chunkBytes}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		pool:          newEntityPool(),
		graph:         newArchetypeGraph(o.chunkBytes),
		locs:          newLocationMap(),
		queue:         newOperationQueue(),
		relationships: make(map[uint32]*relationshipInfo),
	}
}

// Locked reports whether any view (shared or exclusive) currently holds
// the registry. Structural mutation is forbidden while it does.
func (r *Registry) Locked() bool {
	return !r.locks.IsEmpty()
}

// acquireShared opens a shared view slot, or returns LockedRegistryError
// if an exclusive view is currently open.
func (r *Registry) acquireShared() (bit uint32, err error) {
	if r.exclusiveOpen {
		return 0, LockedRegistryError{}
	}
	bit = r.allocateBit()
	r.sharedOpen++
	return bit, nil
}

// acquireExclusive opens the single exclusive view slot, or returns
// LockedRegistryError if any view (shared or exclusive) is open.
func (r *Registry) acquireExclusive() (bit uint32, err error) {
	if r.exclusiveOpen || r.sharedOpen > 0 {
		return 0, LockedRegistryError{}
	}
	bit = r.allocateBit()
	r.exclusiveOpen = true
	return bit, nil
}

// release closes a previously-acquired view slot and, once the registry
// is fully unlocked, replays any operations queued while it was held.
func (r *Registry) release(bit uint32, exclusive bool) {
	r.locks.Unmark(bit)
	if exclusive {
		r.exclusiveOpen = false
	} else if r.sharedOpen > 0 {
		r.sharedOpen--
	}
	if !r.Locked() {
		r.queue.processAll(r)
	}
}

func (r *Registry) allocateBit() uint32 {
	bit := r.nextLockBit % 256
	r.nextLockBit++
	r.locks.Mark(bit)
	return bit
}

// Alive reports whether e is a currently-live handle.
func (r *Registry) Alive(e Entity) bool {
	return r.pool.alive(e)
}

// Create allocates a new entity and routes it into the archetype for
// the given components, each left zero-valued. Returns
// ComponentDuplicateError if components repeats a type.
func (r *Registry) Create(components ...Component) (Entity, error) {
	if r.Locked() {
		return Entity{}, LockedRegistryError{}
	}
	set, err := newComponentSet(components...)
	if err != nil {
		return Entity{}, err
	}
	arch := r.graph.findOrCreate(set)

	zeros := make([]unsafe.Pointer, len(set))
	scratch := make([][]byte, len(set))
	for i, id := range set {
		meta := lookupMeta(id)
		if meta.size == 0 {
			continue // zero-sized (marker) component: nil is a valid zero-length source
		}
		scratch[i] = make([]byte, meta.size)
		zeros[i] = unsafe.Pointer(&scratch[i][0])
	}

	e := r.pool.create()
	chunkIdx, row := arch.emplace(e, zeros)
	r.locs.set(e.ID, entityLocation{arch: arch, chunkIdx: chunkIdx, row: row})
	return e, nil
}

// Destroy recycles e's id and erases its row, patching the location of
// whichever entity gets swapped into its place.
func (r *Registry) Destroy(e Entity) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	if !r.pool.alive(e) {
		return StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	moved, hadMove := loc.arch.swapErase(loc.chunkIdx, loc.row)
	if hadMove {
		r.locs.set(moved.ID, loc)
	}
	r.locs.clear(e.ID)
	delete(r.relationships, e.ID)
	r.notifyChildrenOfDestroy(e)
	return r.pool.recycle(e)
}

// Has reports whether e currently carries the component identified by
// id.
func (r *Registry) Has(e Entity, id ComponentID) (bool, error) {
	if !r.pool.alive(e) {
		return false, StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	return loc.arch.hasComponent(id), nil
}

// componentPtr resolves a live entity's column pointer for id, or
// returns ComponentMissingError.
func (r *Registry) componentPtr(e Entity, id ComponentID) (unsafe.Pointer, error) {
	if !r.pool.alive(e) {
		return nil, StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	col := loc.arch.columnIndex(id)
	if col < 0 {
		return nil, ComponentMissingError{Entity: e, Component: id}
	}
	c := loc.arch.chunks[loc.chunkIdx]
	return c.columnPtr(&loc.arch.layout, col, loc.row), nil
}

// setComponent overwrites e's existing value for id in place if
// present, or traverses the add-edge to move e into the archetype that
// carries id, supplying value for the new column.
func (r *Registry) setComponent(e Entity, id ComponentID, value unsafe.Pointer) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	if !r.pool.alive(e) {
		return StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	meta := lookupMeta(id)

	if col := loc.arch.columnIndex(id); col >= 0 {
		c := loc.arch.chunks[loc.chunkIdx]
		dst := c.columnPtr(&loc.arch.layout, col, loc.row)
		relocateInto(meta, dst, value)
		return nil
	}

	dest := r.graph.traverseAdd(loc.arch, id)
	newChunkIdx, newRow, moved, hadMove, err := loc.arch.moveTo(dest, loc.chunkIdx, loc.row, map[ComponentID]unsafe.Pointer{id: value})
	if err != nil {
		return err
	}
	if hadMove {
		r.locs.set(moved.ID, loc)
	}
	from := loc.arch.layout.set
	r.locs.set(e.ID, entityLocation{arch: dest, chunkIdx: newChunkIdx, row: newRow})
	if cb := Config.events.OnEntityMoved; cb != nil {
		cb(e, from, dest.layout.set)
	}
	return nil
}

// removeComponent traverses the remove-edge for id, moving e's row into
// the archetype without id and dropping the excised value. Returns
// ComponentMissingError if e doesn't carry id, rather than treating the
// removal as a no-op.
func (r *Registry) removeComponent(e Entity, id ComponentID) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	if !r.pool.alive(e) {
		return StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	if loc.arch.columnIndex(id) < 0 {
		return ComponentMissingError{Entity: e, Component: id}
	}

	dest := r.graph.traverseRemove(loc.arch, id)
	newChunkIdx, newRow, moved, hadMove, err := loc.arch.moveTo(dest, loc.chunkIdx, loc.row, nil)
	if err != nil {
		return err
	}
	if hadMove {
		r.locs.set(moved.ID, loc)
	}
	from := loc.arch.layout.set
	r.locs.set(e.ID, entityLocation{arch: dest, chunkIdx: newChunkIdx, row: newRow})
	if cb := Config.events.OnEntityMoved; cb != nil {
		cb(e, from, dest.layout.set)
	}
	return nil
}

// addComponent traverses the add-edge for id with a zero value, for
// callers (AddComponent) that don't supply an initial value. A no-op if
// e already carries id: setComponent's in-place branch would otherwise
// overwrite the existing value with the zero scratch buffer.
func (r *Registry) addComponent(e Entity, id ComponentID) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	if !r.pool.alive(e) {
		return StaleHandleError{Entity: e}
	}
	loc := r.locs.get(e.ID)
	if loc.arch.columnIndex(id) >= 0 {
		return nil
	}

	meta := lookupMeta(id)
	if meta.size == 0 {
		return r.setComponent(e, id, nil)
	}
	scratch := make([]byte, meta.size)
	return r.setComponent(e, id, unsafe.Pointer(&scratch[0]))
}
