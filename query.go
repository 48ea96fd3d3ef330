package silo

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Query is a composable filter over archetype component sets: a
// lower-level complement to View for callers who need arbitrary
// And/Or/Not composition rather than a fixed typed tuple.
type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode is one evaluable node in a query tree.
type QueryNode interface {
	Evaluate(set ComponentSet) bool
}

// queryOperation is the logical combinator a compositeNode applies.
type queryOperation int

const (
	opAnd queryOperation = iota
	opOr
	opNot
)

type compositeNode struct {
	op         queryOperation
	children   []QueryNode
	components []Component
}

// leafNode is a flat "has all of these components" test, with no
// nested children. It's what View1..View4 build against: a tuple of
// components with no Or/Not structure, so there's no need to pay for a
// compositeNode's child-node bookkeeping.
type leafNode struct {
	components []Component
}

func newLeafNode(components ...Component) *leafNode {
	return &leafNode{components: components}
}

type query struct {
	root QueryNode
}

// NewQuery starts a new, empty composable Query.
func NewQuery() Query {
	return &query{}
}

func newCompositeNode(op queryOperation, components []Component) *compositeNode {
	return &compositeNode{op: op, components: components}
}

func componentsMask(components []Component) mask.Mask {
	var m mask.Mask
	for _, c := range components {
		m.Mark(uint32(c.ID()))
	}
	return m
}

func (n *compositeNode) Evaluate(set ComponentSet) bool {
	nodeMask := componentsMask(n.components)
	setMask := set.mask()

	switch n.op {
	case opAnd:
		if !setMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(set) {
				return false
			}
		}
		return true
	case opOr:
		if setMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(set) {
				return true
			}
		}
		return false
	case opNot:
		if len(n.children) == 0 {
			return setMask.ContainsNone(nodeMask)
		}
		if len(n.components) > 0 && !setMask.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(set) {
				return false
			}
		}
		return true
	}
	return false
}

func (n *leafNode) Evaluate(set ComponentSet) bool {
	return set.mask().ContainsAll(componentsMask(n.components))
}

// And creates an AND node over items (Components, []Component, or
// nested QueryNode/Query values).
func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(opAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates an OR node over items.
func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(opOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a NOT node over items.
func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(opNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case Component, []Component, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("silo: invalid query item type %T (want Component, []Component, or QueryNode)", item)
		}
	}
	return nil
}

func (q *query) processItems(items ...interface{}) ([]Component, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	var components []Component
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

func (q *query) Evaluate(set ComponentSet) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(set)
}

// MatchArchetypes returns every archetype in r currently matching q, in
// stable creation order.
func (r *Registry) MatchArchetypes(q QueryNode) []*archetype {
	var out []*archetype
	for _, a := range r.graph.archetypes() {
		if q.Evaluate(a.layout.set) {
			out = append(out, a)
		}
	}
	return out
}
