package silo

import "fmt"

// StaleHandleError reports an operation on an entity whose generation
// no longer matches the pool's record, or on the invalid sentinel.
type StaleHandleError struct {
	Entity Entity
}

func (e StaleHandleError) Error() string {
	return fmt.Sprintf("silo: stale entity handle %v", e.Entity)
}

// ComponentMissingError reports Get/Remove on a component the entity
// does not carry.
type ComponentMissingError struct {
	Entity    Entity
	Component ComponentID
}

func (e ComponentMissingError) Error() string {
	return fmt.Sprintf("silo: entity %v does not carry component %v", e.Entity, e.Component)
}

// ComponentDuplicateError reports Create called with two initializers
// for the same component type.
type ComponentDuplicateError struct {
	Component ComponentID
}

func (e ComponentDuplicateError) Error() string {
	return fmt.Sprintf("silo: duplicate component %v in entity initializer", e.Component)
}

// AliasingViolationError reports a view constructed with a conflicting
// reference set (the same component named twice in one tuple).
type AliasingViolationError struct {
	Component ComponentID
}

func (e AliasingViolationError) Error() string {
	return fmt.Sprintf("silo: component %v referenced twice in one view", e.Component)
}

// LockedRegistryError reports a structural mutation attempted while a
// view holds shared or exclusive access to the registry, or a view that
// cannot open because an exclusive view (or, for an exclusive view, any
// view) is already open.
type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "silo: registry is locked by a live view"
}

// EntityRelationError reports an attempt to parent an entity that
// already has a parent.
type EntityRelationError struct {
	Child, Parent Entity
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("silo: entity %v already has parent %v", e.Child, e.Parent)
}
