package silo

// View1 iterates every entity carrying a T1 component. Constructed with
// NewView1 (shared) or NewView1Mut (exclusive); call Next until it
// returns false, then Close (or let it auto-close on exhaustion).
type View1[T1 any] struct {
	cur *cursor
	h1  Handle[T1]

	arch *archetype
	col1 int
}

// NewView1 opens a shared (read-only) view over T1. Shared views may
// coexist with any number of other shared views, but not with an
// exclusive one.
func NewView1[T1 any](r *Registry, h1 Handle[T1]) (*View1[T1], error) {
	return newView1(r, h1, false)
}

// NewView1Mut opens an exclusive view over T1, letting the caller
// mutate component values in place. It opens only while no other view,
// shared or exclusive, is open on the registry.
func NewView1Mut[T1 any](r *Registry, h1 Handle[T1]) (*View1[T1], error) {
	return newView1(r, h1, true)
}

func newView1[T1 any](r *Registry, h1 Handle[T1], mut bool) (*View1[T1], error) {
	q := newLeafNode(Component(h1))
	cur, err := newCursor(r, q, mut)
	if err != nil {
		return nil, err
	}
	return &View1[T1]{cur: cur, h1: h1, col1: -1}, nil
}

// Next advances to the next matching entity.
func (v *View1[T1]) Next() bool {
	if !v.cur.Next() {
		return false
	}
	if v.arch != v.cur.currentArchetype() {
		v.arch = v.cur.currentArchetype()
		v.col1 = v.arch.columnIndex(v.h1.id)
	}
	return true
}

// Close releases the view's hold on the registry.
func (v *View1[T1]) Close() { v.cur.Close() }

// Entity returns the current row's entity.
func (v *View1[T1]) Entity() Entity { return v.cur.currentEntity() }

// Get returns a pointer to the current row's T1 value. With a shared
// view this must be treated as read-only; only a view opened with
// NewView1Mut guarantees exclusive write access.
func (v *View1[T1]) Get() *T1 {
	ch := v.cur.currentChunk()
	ptr := ch.columnPtr(&v.arch.layout, v.col1, v.cur.currentRow())
	return (*T1)(ptr)
}

// View2 iterates every entity carrying both T1 and T2.
type View2[T1, T2 any] struct {
	cur    *cursor
	h1     Handle[T1]
	h2     Handle[T2]
	arch   *archetype
	c1, c2 int
}

func NewView2[T1, T2 any](r *Registry, h1 Handle[T1], h2 Handle[T2]) (*View2[T1, T2], error) {
	return newView2(r, h1, h2, false)
}

func NewView2Mut[T1, T2 any](r *Registry, h1 Handle[T1], h2 Handle[T2]) (*View2[T1, T2], error) {
	return newView2(r, h1, h2, true)
}

func newView2[T1, T2 any](r *Registry, h1 Handle[T1], h2 Handle[T2], mut bool) (*View2[T1, T2], error) {
	if h1.id == h2.id {
		return nil, AliasingViolationError{Component: h1.id}
	}
	q := newLeafNode(Component(h1), Component(h2))
	cur, err := newCursor(r, q, mut)
	if err != nil {
		return nil, err
	}
	return &View2[T1, T2]{cur: cur, h1: h1, h2: h2, c1: -1, c2: -1}, nil
}

func (v *View2[T1, T2]) Next() bool {
	if !v.cur.Next() {
		return false
	}
	if v.arch != v.cur.currentArchetype() {
		v.arch = v.cur.currentArchetype()
		v.c1 = v.arch.columnIndex(v.h1.id)
		v.c2 = v.arch.columnIndex(v.h2.id)
	}
	return true
}

func (v *View2[T1, T2]) Close() { v.cur.Close() }

func (v *View2[T1, T2]) Entity() Entity { return v.cur.currentEntity() }

func (v *View2[T1, T2]) Get() (*T1, *T2) {
	ch := v.cur.currentChunk()
	row := v.cur.currentRow()
	p1 := (*T1)(ch.columnPtr(&v.arch.layout, v.c1, row))
	p2 := (*T2)(ch.columnPtr(&v.arch.layout, v.c2, row))
	return p1, p2
}

// View3 iterates every entity carrying T1, T2, and T3.
type View3[T1, T2, T3 any] struct {
	cur        *cursor
	h1         Handle[T1]
	h2         Handle[T2]
	h3         Handle[T3]
	arch       *archetype
	c1, c2, c3 int
}

func NewView3[T1, T2, T3 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3]) (*View3[T1, T2, T3], error) {
	return newView3(r, h1, h2, h3, false)
}

func NewView3Mut[T1, T2, T3 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3]) (*View3[T1, T2, T3], error) {
	return newView3(r, h1, h2, h3, true)
}

func newView3[T1, T2, T3 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3], mut bool) (*View3[T1, T2, T3], error) {
	ids := []ComponentID{h1.id, h2.id, h3.id}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, AliasingViolationError{Component: dup}
	}
	q := newLeafNode(Component(h1), Component(h2), Component(h3))
	cur, err := newCursor(r, q, mut)
	if err != nil {
		return nil, err
	}
	return &View3[T1, T2, T3]{cur: cur, h1: h1, h2: h2, h3: h3, c1: -1, c2: -1, c3: -1}, nil
}

func (v *View3[T1, T2, T3]) Next() bool {
	if !v.cur.Next() {
		return false
	}
	if v.arch != v.cur.currentArchetype() {
		v.arch = v.cur.currentArchetype()
		v.c1 = v.arch.columnIndex(v.h1.id)
		v.c2 = v.arch.columnIndex(v.h2.id)
		v.c3 = v.arch.columnIndex(v.h3.id)
	}
	return true
}

func (v *View3[T1, T2, T3]) Close() { v.cur.Close() }

func (v *View3[T1, T2, T3]) Entity() Entity { return v.cur.currentEntity() }

func (v *View3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	ch := v.cur.currentChunk()
	row := v.cur.currentRow()
	p1 := (*T1)(ch.columnPtr(&v.arch.layout, v.c1, row))
	p2 := (*T2)(ch.columnPtr(&v.arch.layout, v.c2, row))
	p3 := (*T3)(ch.columnPtr(&v.arch.layout, v.c3, row))
	return p1, p2, p3
}

// View4 iterates every entity carrying T1, T2, T3, and T4.
type View4[T1, T2, T3, T4 any] struct {
	cur            *cursor
	h1             Handle[T1]
	h2             Handle[T2]
	h3             Handle[T3]
	h4             Handle[T4]
	arch           *archetype
	c1, c2, c3, c4 int
}

func NewView4[T1, T2, T3, T4 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3], h4 Handle[T4]) (*View4[T1, T2, T3, T4], error) {
	return newView4(r, h1, h2, h3, h4, false)
}

func NewView4Mut[T1, T2, T3, T4 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3], h4 Handle[T4]) (*View4[T1, T2, T3, T4], error) {
	return newView4(r, h1, h2, h3, h4, true)
}

func newView4[T1, T2, T3, T4 any](r *Registry, h1 Handle[T1], h2 Handle[T2], h3 Handle[T3], h4 Handle[T4], mut bool) (*View4[T1, T2, T3, T4], error) {
	ids := []ComponentID{h1.id, h2.id, h3.id, h4.id}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, AliasingViolationError{Component: dup}
	}
	q := newLeafNode(Component(h1), Component(h2), Component(h3), Component(h4))
	cur, err := newCursor(r, q, mut)
	if err != nil {
		return nil, err
	}
	return &View4[T1, T2, T3, T4]{cur: cur, h1: h1, h2: h2, h3: h3, h4: h4, c1: -1, c2: -1, c3: -1, c4: -1}, nil
}

func (v *View4[T1, T2, T3, T4]) Next() bool {
	if !v.cur.Next() {
		return false
	}
	if v.arch != v.cur.currentArchetype() {
		v.arch = v.cur.currentArchetype()
		v.c1 = v.arch.columnIndex(v.h1.id)
		v.c2 = v.arch.columnIndex(v.h2.id)
		v.c3 = v.arch.columnIndex(v.h3.id)
		v.c4 = v.arch.columnIndex(v.h4.id)
	}
	return true
}

func (v *View4[T1, T2, T3, T4]) Close() { v.cur.Close() }

func (v *View4[T1, T2, T3, T4]) Entity() Entity { return v.cur.currentEntity() }

func (v *View4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	ch := v.cur.currentChunk()
	row := v.cur.currentRow()
	p1 := (*T1)(ch.columnPtr(&v.arch.layout, v.c1, row))
	p2 := (*T2)(ch.columnPtr(&v.arch.layout, v.c2, row))
	p3 := (*T3)(ch.columnPtr(&v.arch.layout, v.c3, row))
	p4 := (*T4)(ch.columnPtr(&v.arch.layout, v.c4, row))
	return p1, p2, p3, p4
}

// firstDuplicate returns the first id repeated in ids, if any. A view
// requesting the same component twice in its tuple is rejected at
// construction rather than silently deduplicated.
func firstDuplicate(ids []ComponentID) (ComponentID, bool) {
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				return ids[i], true
			}
		}
	}
	return 0, false
}
