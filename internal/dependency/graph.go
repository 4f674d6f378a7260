// Package dependency builds and flattens dependency graphs.
package dependency // import "github.com/CognitoIQ/xsdmodel/internal/dependency"

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// insertUnique inserts x into the sorted set, if it is not already
// present. The augmented set is returned.
func insertUnique[T constraints.Ordered](set []T, x T) []T {
	if i, found := slices.BinarySearch(set, x); !found {
		set = slices.Insert(set, i, x)
	}
	return set
}

// A Graph is a collection of targets and their dependencies. The
// zero value is an empty Graph.
type Graph[T constraints.Ordered] struct {
	targets []T
	nodes   map[T][]T
}

// Len returns the number of targets in the graph.
func (g *Graph[T]) Len() int {
	return len(g.targets)
}

// Target adds a target with no dependencies to a Graph.
func (g *Graph[T]) Target(target T) {
	g.targets = insertUnique(g.targets, target)
}

// Add adds a dependency to a Graph.
func (g *Graph[T]) Add(target, dependency T) {
	if g.nodes == nil {
		g.nodes = make(map[T][]T)
	}
	g.Target(target)
	g.nodes[target] = insertUnique(g.nodes[target], dependency)
}

// Flatten calls the walk function on each node in the Graph in topological
// order, starting with the leaves and traversing up to the roots. The same
// Graph will always be traversed in the same order.
//
// Every vertex in the Graph is visited once; any cycles in the graph are
// skipped.
func (g *Graph[T]) Flatten(walk func(T)) {
	visited := make(map[T]bool, len(g.targets))
	g.flatten(walk, g.targets, visited)
}

func (g *Graph[T]) flatten(walk func(T), targets []T, visited map[T]bool) {
	for _, tgt := range targets {
		if visited[tgt] {
			continue
		}
		visited[tgt] = true
		g.flatten(walk, g.nodes[tgt], visited)
		walk(tgt)
	}
}
