package silo

// factory is a package-level entry point grouping registry/query
// construction for discoverability, since Go methods can't be generic:
// RegisterComponent and the ViewN/NewViewN family stay free functions.
type factory struct{}

// Factory is the global factory instance for constructing registries
// and queries.
var Factory factory

// NewRegistry constructs a new, empty Registry.
func (f factory) NewRegistry(opts ...RegistryOption) *Registry {
	return NewRegistry(opts...)
}

// NewQuery starts a new composable Query.
func (f factory) NewQuery() Query {
	return NewQuery()
}

// NewBlueprintCache creates a new entity Blueprint cache with the given
// capacity.
func (f factory) NewBlueprintCache(cap int) BlueprintCache {
	return newSimpleBlueprintCache(cap)
}
