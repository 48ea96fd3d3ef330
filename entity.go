package silo

import "fmt"

// Entity is an opaque, generational handle identifying one row of
// component data. Two handles are equal (==) only when both ID and
// Generation match. Entity defines no ordering.
type Entity struct {
	ID         uint32
	Generation uint32
}

// InvalidEntity is the sentinel handle. Valid reports false for it and
// for nothing else that a pool has ever handed out.
var InvalidEntity = Entity{}

// Valid reports whether e is not the invalid sentinel. It does not by
// itself mean e is currently alive in any particular registry — use
// Registry.Alive for that.
func (e Entity) Valid() bool {
	return e != InvalidEntity
}

// String renders an entity as "id#generation" for logs and test
// failures.
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.ID, e.Generation)
}

// entityPool allocates generational entity ids and recycles freed ones
// with a bumped generation. Entity id 0 is reserved for InvalidEntity,
// so the pool's dense generation vector is 1-indexed; generations[0] is
// never read.
type entityPool struct {
	generations []uint32
	freeList    []uint32
	onFreeList  []bool
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 1), // index 0 unused (reserved for InvalidEntity)
		onFreeList:  make([]bool, 1),
	}
}

// create returns a never-used id with generation 0, or recycles the
// head of the free-list with its stored (pre-bumped) generation.
func (p *entityPool) create() Entity {
	if n := len(p.freeList); n > 0 {
		id := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.onFreeList[id] = false
		return Entity{ID: id, Generation: p.generations[id]}
	}
	id := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	p.onFreeList = append(p.onFreeList, false)
	return Entity{ID: id, Generation: 0}
}

// recycle validates e against the pool's record, bumps its generation,
// and returns the id to the free-list. Returns StaleHandleError if e's
// generation doesn't match or e is already recycled.
func (p *entityPool) recycle(e Entity) error {
	if !p.alive(e) {
		return StaleHandleError{Entity: e}
	}
	p.generations[e.ID]++
	p.onFreeList[e.ID] = true
	p.freeList = append(p.freeList, e.ID)
	return nil
}

// alive reports whether e's generation matches the pool's record and
// e's id is not currently sitting on the free-list.
func (p *entityPool) alive(e Entity) bool {
	if e.ID == 0 || int(e.ID) >= len(p.generations) {
		return false
	}
	return p.generations[e.ID] == e.Generation && !p.onFreeList[e.ID]
}
