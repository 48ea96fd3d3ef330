package silo

import "unsafe"

// archetypeID is a stable, process-local numeric id for an archetype,
// assigned in creation order. Iteration over archetypes walks this
// order, so it stays stable for the registry's lifetime.
type archetypeID uint32

// archetype stores every entity whose component set exactly matches its
// own, in a growable list of fixed-capacity chunks.
type archetype struct {
	id     archetypeID
	layout archetypeLayout
	chunks []*chunk

	addEdge    map[ComponentID]*archetype
	removeEdge map[ComponentID]*archetype
}

func newArchetype(id archetypeID, set ComponentSet, chunkBytes int) *archetype {
	return &archetype{
		id:         id,
		layout:     computeLayout(set, chunkBytes),
		addEdge:    make(map[ComponentID]*archetype),
		removeEdge: make(map[ComponentID]*archetype),
	}
}

// ID returns the archetype's stable identifier.
func (a *archetype) ID() uint32 { return uint32(a.id) }

// Set returns the archetype's canonical component set.
func (a *archetype) Set() ComponentSet { return a.layout.set }

// Len returns the total number of entities stored across all chunks.
func (a *archetype) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	full := (len(a.chunks) - 1) * a.layout.rowCapacity
	return full + a.chunks[len(a.chunks)-1].len
}

// hasComponent reports whether id is a member of this archetype's set.
func (a *archetype) hasComponent(id ComponentID) bool {
	return a.layout.set.contains(id)
}

// columnIndex returns the index of id's column in the layout, or -1.
func (a *archetype) columnIndex(id ComponentID) int {
	for i, existing := range a.layout.set {
		if existing == id {
			return i
		}
	}
	return -1
}

// lastChunk returns the archetype's last chunk, allocating a fresh one
// if there are none or the last is full.
func (a *archetype) lastChunk() *chunk {
	if len(a.chunks) == 0 || a.chunks[len(a.chunks)-1].full(&a.layout) {
		a.chunks = append(a.chunks, newChunk(&a.layout))
		if cb := Config.events.OnChunkAllocated; cb != nil {
			cb(a.layout.set, len(a.chunks)-1)
		}
	}
	return a.chunks[len(a.chunks)-1]
}

// emplace appends entity e to the archetype's last chunk (allocating a
// new one if needed), move-constructing each component from srcPtrs
// (ordered to match a.layout.set). Returns the (chunk, row) location.
func (a *archetype) emplace(e Entity, srcPtrs []unsafe.Pointer) (chunkIdx, row int) {
	c := a.lastChunk()
	row, err := c.pushBack(&a.layout, e, srcPtrs)
	if err != nil {
		// lastChunk guarantees room; a non-nil error here is a bug.
		panic(err)
	}
	return len(a.chunks) - 1, row
}

// swapErase removes the row at (chunkIdx, row). To keep every chunk but
// possibly the last one full, the vacated slot is filled from the
// archetype's globally last row — not merely the last row of the same
// chunk — so a hole opened in an earlier chunk is immediately closed by
// the tail of the last chunk. It returns the entity that was relocated
// into that slot (if any), so the caller can patch the entity location
// map.
func (a *archetype) swapErase(chunkIdx, row int) (moved Entity, hadMove bool) {
	c := a.chunks[chunkIdx]
	last := len(a.chunks) - 1
	lastChunk := a.chunks[last]
	lastRow := lastChunk.len - 1

	c.dropRow(&a.layout, row)

	if chunkIdx == last && row == lastRow {
		c.len--
		if c.len == 0 && last > 0 {
			a.chunks = a.chunks[:last]
		}
		return Entity{}, false
	}

	c.relocateRowFrom(&a.layout, row, lastChunk, lastRow)
	moved, hadMove = c.entities[row], true
	lastChunk.len--

	if lastChunk.len == 0 && last > 0 {
		a.chunks = a.chunks[:last]
	}
	return moved, hadMove
}

// moveTo is the core structural operation behind adding/removing a
// component: it appends a new row in other, move-constructing every
// component present in both sets from the old row, uses extra for any
// component present only in other, drops components present only in
// self, and finally swap-erases the old row. The destination row is
// constructed before the source row is erased, so a failure here
// (extra missing a required component) leaves the source entirely
// untouched.
func (a *archetype) moveTo(other *archetype, chunkIdx, row int, extra map[ComponentID]unsafe.Pointer) (newChunkIdx, newRow int, movedInSelf Entity, hadMove bool, err error) {
	srcChunk := a.chunks[chunkIdx]
	e := srcChunk.entities[row]

	srcPtrs := make([]unsafe.Pointer, len(other.layout.set))
	for i, id := range other.layout.set {
		if a.hasComponent(id) {
			col := a.columnIndex(id)
			srcPtrs[i] = srcChunk.columnPtr(&a.layout, col, row)
			continue
		}
		ptr, ok := extra[id]
		if !ok {
			return 0, 0, Entity{}, false, ComponentMissingError{Entity: e, Component: id}
		}
		srcPtrs[i] = ptr
	}

	newChunkIdx, newRow = other.emplace(e, srcPtrs)
	movedInSelf, hadMove = a.swapErase(chunkIdx, row)
	return newChunkIdx, newRow, movedInSelf, hadMove, nil
}

// eachChunk calls f for every chunk in creation order, stopping early
// if f returns false.
func (a *archetype) eachChunk(f func(*chunk) bool) {
	for _, c := range a.chunks {
		if !f(c) {
			return
		}
	}
}
