// SPDX-License-Identifier: MPL-2.0

// Package dag orders named steps that declare prerequisites. toil uses it to
// run the requested provisioning tasks so that every task follows the tasks
// it builds on.
package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrCycle is the sentinel wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

type (
	// CycleError lists the nodes left unordered because they sit on, or
	// behind, a cycle.
	CycleError struct {
		Cycle []string
	}

	// Graph is a directed graph whose edges mean "runs before". Nodes keep
	// insertion order so that sorting is deterministic.
	Graph struct {
		successors map[string][]string
		nodes      []string
		index      map[string]int
	}
)

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		successors: make(map[string][]string),
		index:      make(map[string]int),
	}
}

// AddNode adds name if it is not present yet.
func (g *Graph) AddNode(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, name)
}

// HasNode reports whether name was added.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

// AddEdge records that from runs before to, adding both nodes as needed.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	if slices.Contains(g.successors[from], to) {
		return
	}
	g.successors[from] = append(g.successors[from], to)
}

// TopologicalSort returns every node after all of its predecessors (Kahn's
// algorithm). Among nodes that are ready at the same time, the one added
// first comes first.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, succ := range g.successors {
		for _, s := range succ {
			inDegree[s]++
		}
	}

	var ready []string
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		released := false
		for _, s := range g.successors[node] {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready = append(ready, s)
				released = true
			}
		}
		if released {
			slices.SortStableFunc(ready, func(a, b string) int { return g.index[a] - g.index[b] })
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				stuck = append(stuck, node)
			}
		}
		return nil, &CycleError{Cycle: stuck}
	}
	return order, nil
}
