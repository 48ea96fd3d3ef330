package silo

import "unsafe"

// Get returns a copy of e's current value for h's component, or an
// error if e is stale or doesn't carry the component.
func Get[T any](r *Registry, e Entity, h Handle[T]) (T, error) {
	var zero T
	ptr, err := r.componentPtr(e, h.id)
	if err != nil {
		return zero, err
	}
	return *(*T)(ptr), nil
}

// GetMut returns a direct pointer into e's stored value for h's
// component, letting the caller mutate it in place without a
// structural move. The pointer is only valid until the next structural
// mutation of the owning registry.
func GetMut[T any](r *Registry, e Entity, h Handle[T]) (*T, error) {
	ptr, err := r.componentPtr(e, h.id)
	if err != nil {
		return nil, err
	}
	return (*T)(ptr), nil
}

// Set writes value as e's component for h, adding the component (and
// moving e to the archetype that carries it) if e doesn't already have
// one.
func Set[T any](r *Registry, e Entity, h Handle[T], value T) error {
	return r.setComponent(e, h.id, unsafe.Pointer(&value))
}

// AddComponent attaches h's component to e with a zero value. If e
// already carries the component, this is a no-op: its existing value is
// left untouched.
func AddComponent[T any](r *Registry, e Entity, h Handle[T]) error {
	return r.addComponent(e, h.id)
}

// RemoveComponent detaches h's component from e, moving e to the
// archetype without it. Returns ComponentMissingError if e doesn't
// carry the component.
func RemoveComponent[T any](r *Registry, e Entity, h Handle[T]) error {
	return r.removeComponent(e, h.id)
}

// HasComponent reports whether e currently carries h's component.
func HasComponent[T any](r *Registry, e Entity, h Handle[T]) (bool, error) {
	return r.Has(e, h.id)
}

// EnqueueSet defers Set until the registry is next fully unlocked,
// letting callers mutate structure from inside a view's iteration body.
func EnqueueSet[T any](r *Registry, e Entity, h Handle[T], value T) {
	boxed := new(T)
	*boxed = value
	r.queue.enqueue(setComponentOp{entity: e, id: h.id, value: unsafe.Pointer(boxed)})
}

// EnqueueRemoveComponent defers RemoveComponent until the registry is
// next fully unlocked.
func EnqueueRemoveComponent[T any](r *Registry, e Entity, h Handle[T]) {
	r.queue.enqueue(removeComponentOp{entity: e, id: h.id})
}
