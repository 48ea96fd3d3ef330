package silo

// cursor is the low-level, chunk-contiguous iterator the ViewN family is
// built on: it walks every chunk of every archetype matching a query,
// holding the registry's lock (shared or exclusive) for its whole
// lifetime. Views never expose cursor directly; Next/Get/Close are the
// public surface.
type cursor struct {
	reg   *Registry
	query QueryNode
	bit   uint32
	mut   bool

	matched  []*archetype
	archIdx  int
	chunkIdx int
	row      int

	initialized bool
	closed      bool
}

func newCursor(reg *Registry, query QueryNode, mut bool) (*cursor, error) {
	var bit uint32
	var err error
	if mut {
		bit, err = reg.acquireExclusive()
	} else {
		bit, err = reg.acquireShared()
	}
	if err != nil {
		return nil, err
	}

	c := &cursor{reg: reg, query: query, bit: bit, mut: mut}
	for _, a := range reg.graph.archetypes() {
		if query.Evaluate(a.layout.set) {
			c.matched = append(c.matched, a)
		}
	}
	c.row = -1
	c.initialized = true
	return c, nil
}

// Next advances to the next matching row, returning false once
// exhausted (at which point the cursor auto-closes, releasing the
// registry).
func (c *cursor) Next() bool {
	if c.closed {
		return false
	}
	for c.archIdx < len(c.matched) {
		a := c.matched[c.archIdx]
		if c.chunkIdx >= len(a.chunks) {
			c.archIdx++
			c.chunkIdx = 0
			c.row = -1
			continue
		}
		ch := a.chunks[c.chunkIdx]
		c.row++
		if c.row < ch.len {
			return true
		}
		c.chunkIdx++
		c.row = -1
	}
	c.Close()
	return false
}

// currentArchetype, currentChunk and currentRow describe the cursor's
// present position; callers must only call these between a Next() that
// returned true and the following Next() call.
func (c *cursor) currentArchetype() *archetype { return c.matched[c.archIdx] }
func (c *cursor) currentChunk() *chunk         { return c.currentArchetype().chunks[c.chunkIdx] }
func (c *cursor) currentRow() int              { return c.row }

// currentEntity returns the entity at the cursor's current position.
func (c *cursor) currentEntity() Entity {
	return c.currentChunk().entities[c.row]
}

// Close releases the registry lock the cursor is holding. Idempotent;
// safe to call after natural exhaustion or early abandonment alike.
func (c *cursor) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.reg.release(c.bit, c.mut)
}

// Count returns the total number of rows the cursor's query matches,
// without consuming iteration state (it only reads the matched
// archetypes' lengths).
func (c *cursor) Count() int {
	total := 0
	for _, a := range c.matched {
		total += a.Len()
	}
	return total
}
