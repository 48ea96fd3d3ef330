package silo

// DestroyCallback is invoked with a child entity when its parent is
// destroyed.
type DestroyCallback func(child Entity)

// relationshipInfo tracks one entity's parent link and the callback to
// fire when that parent goes away.
type relationshipInfo struct {
	parent          Entity
	parentGen       uint32
	onParentDestroy DestroyCallback
}

// SetParent establishes a parent-child relationship between child and
// parent: when parent is destroyed, callback (if non-nil) runs with
// child as its argument. A child may have at most one parent at a time.
func (r *Registry) SetParent(child, parent Entity, callback DestroyCallback) error {
	if !r.pool.alive(child) {
		return StaleHandleError{Entity: child}
	}
	if !r.pool.alive(parent) {
		return StaleHandleError{Entity: parent}
	}
	if info, ok := r.relationships[child.ID]; ok && info.parent.Valid() {
		return EntityRelationError{Child: child, Parent: info.parent}
	}
	r.relationships[child.ID] = &relationshipInfo{
		parent:          parent,
		parentGen:       parent.Generation,
		onParentDestroy: callback,
	}
	return nil
}

// Parent returns child's current parent, or the invalid entity if it
// has none (or its parent has since been recycled).
func (r *Registry) Parent(child Entity) Entity {
	info, ok := r.relationships[child.ID]
	if !ok || !info.parent.Valid() {
		return InvalidEntity
	}
	if info.parent.Generation != info.parentGen {
		return InvalidEntity
	}
	return info.parent
}

// notifyChildrenOfDestroy fires every registered onParentDestroy
// callback whose parent is e, called from Destroy before e's id is
// recycled.
func (r *Registry) notifyChildrenOfDestroy(e Entity) {
	for childID, info := range r.relationships {
		if info.parent == e {
			if info.onParentDestroy != nil {
				info.onParentDestroy(Entity{ID: childID, Generation: r.pool.generations[childID]})
			}
			delete(r.relationships, childID)
		}
	}
}
