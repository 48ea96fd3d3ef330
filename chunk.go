package silo

import (
	"errors"
	"unsafe"
)

// errChunkFull is internal: pushBack returns it when the chunk has no
// free row. The owning archetype never expects to see it, because
// lastChunk allocates a fresh chunk before every push; emplace treats it
// as a bug and panics. It is not one of the Registry-facing error kinds.
var errChunkFull = errors.New("silo: chunk is full")

// columnLayout describes one component column's placement within a
// chunk's backing buffer.
type columnLayout struct {
	id     ComponentID
	offset uintptr
	stride uintptr
}

// archetypeLayout is the layout descriptor chunk operations consult
// implicitly, via a pointer the owning archetype passes into every
// call. It is computed once when an archetype is created and shared
// by all of that archetype's chunks.
type archetypeLayout struct {
	set         ComponentSet
	columns     []columnLayout   // parallel to set, ascending component id order
	metas       []*componentMeta // parallel to set; resolved once at construction
	rowCapacity int              // rows per chunk, computed by computeLayout
	bufBytes    int              // total backing buffer size for one chunk
}

// computeLayout solves for the largest row count N that fits the set's
// columns (entity ids plus one slice per component) within chunkBytes:
//
//	entity_column_bytes(N) + Σ pad_to_align(component_i) + N·size_of(component_i) ≤ chunkBytes
//
// The alignment-padding term is bounded by reserving each column's
// worst-case slack (align-1 bytes) up front, plus the one trailing byte
// described below; the real per-column offset computed below is then
// guaranteed to fit within that reservation.
func computeLayout(set ComponentSet, chunkBytes int) archetypeLayout {
	const entityStride = unsafe.Sizeof(Entity{})

	var perRow uintptr = entityStride
	var fixedOverhead uintptr = 1 // the trailing byte added to bufBytes
	metas := make([]*componentMeta, len(set))
	for i, id := range set {
		m := lookupMeta(id)
		metas[i] = m
		perRow += m.size
		if m.align > 1 {
			fixedOverhead += m.align - 1
		}
	}

	rowCapacity := 1
	if perRow > 0 {
		budget := uintptr(chunkBytes)
		if budget > fixedOverhead {
			rowCapacity = int((budget - fixedOverhead) / perRow)
		}
		if rowCapacity < 1 {
			rowCapacity = 1
		}
	}

	columns := make([]columnLayout, len(set))
	cursor := uintptr(rowCapacity) * entityStride
	for i, m := range metas {
		if m.align > 1 {
			if rem := cursor % m.align; rem != 0 {
				cursor += m.align - rem
			}
		}
		columns[i] = columnLayout{id: m.id, offset: cursor, stride: m.size}
		cursor += uintptr(rowCapacity) * m.size
	}

	// +1 guarantees every column offset is a valid index into buf even
	// when the set's final column is zero-sized (a marker component),
	// whose offset would otherwise land exactly at the buffer's end.
	return archetypeLayout{
		set:         set,
		columns:     columns,
		metas:       metas,
		rowCapacity: rowCapacity,
		bufBytes:    int(cursor) + 1,
	}
}

// chunk is a fixed-capacity, struct-of-arrays block of rows. The
// entity-id column is a plain Go slice (safe, GC-free of concern since
// Entity holds no pointers); component columns live in one shared byte
// arena sized by the owning archetype's layout.
type chunk struct {
	entities []Entity
	buf      []byte
	len      int
}

func newChunk(layout *archetypeLayout) *chunk {
	return &chunk{
		entities: make([]Entity, layout.rowCapacity),
		buf:      make([]byte, layout.bufBytes),
	}
}

// full reports whether the chunk has reached its layout's row capacity.
func (c *chunk) full(layout *archetypeLayout) bool {
	return c.len >= layout.rowCapacity
}

// columnPtr returns a pointer to row's slot in the colIdx'th column.
func (c *chunk) columnPtr(layout *archetypeLayout, colIdx, row int) unsafe.Pointer {
	col := layout.columns[colIdx]
	return unsafe.Pointer(&c.buf[uintptr(col.offset)+uintptr(row)*col.stride])
}

// pushBack appends entity e at row len, move-constructing each
// component from srcPtrs (parallel to layout.set) into the new row, and
// returns the row index. Fails with errChunkFull if the chunk has no
// free row; the chunk is left untouched on failure.
func (c *chunk) pushBack(layout *archetypeLayout, e Entity, srcPtrs []unsafe.Pointer) (int, error) {
	if c.full(layout) {
		return 0, errChunkFull
	}
	row := c.len
	c.entities[row] = e
	for i, meta := range layout.metas {
		dst := c.columnPtr(layout, i, row)
		relocateInto(meta, dst, srcPtrs[i])
	}
	c.len++
	return row, nil
}

// dropRow invokes each component's drop operation on row's values,
// without touching c.len. Used as the first step of a removal, whether
// or not a relocation from elsewhere follows.
func (c *chunk) dropRow(layout *archetypeLayout, row int) {
	for i, meta := range layout.metas {
		if meta.drop != nil {
			meta.drop(c.columnPtr(layout, i, row))
		}
	}
}

// relocateRowFrom move-constructs src's srcRow (entity and every
// component) into c's dstRow. src and c may be the same chunk.
func (c *chunk) relocateRowFrom(layout *archetypeLayout, dstRow int, src *chunk, srcRow int) {
	c.entities[dstRow] = src.entities[srcRow]
	for i, meta := range layout.metas {
		dst := c.columnPtr(layout, i, dstRow)
		s := src.columnPtr(layout, i, srcRow)
		relocateInto(meta, dst, s)
	}
}

// relocateInto moves one component value from src into dst using the
// metadata's move_construct when the type isn't relocatable, or a raw
// byte copy otherwise.
func relocateInto(meta *componentMeta, dst, src unsafe.Pointer) {
	if meta.relocatable {
		copy(unsafe.Slice((*byte)(dst), meta.size), unsafe.Slice((*byte)(src), meta.size))
		return
	}
	meta.moveConstruct(dst, src)
}
