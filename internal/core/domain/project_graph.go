package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// ProjectGraph records project-to-project references.
// Paths keep the spelling of their first registration; lookups fold case.
type ProjectGraph struct {
	paths map[ProjectKey]string
	refs  map[ProjectKey][]ProjectKey
	order []ProjectKey
}

// NewProjectGraph creates an empty graph.
func NewProjectGraph() *ProjectGraph {
	return &ProjectGraph{
		paths: make(map[ProjectKey]string),
		refs:  make(map[ProjectKey][]ProjectKey),
	}
}

// AddProject registers a project and replaces its reference list.
func (g *ProjectGraph) AddProject(path string, references []string) {
	key := g.register(path)
	deps := make([]ProjectKey, 0, len(references))
	for _, ref := range references {
		deps = append(deps, g.register(ref))
	}
	g.refs[key] = deps
}

func (g *ProjectGraph) register(path string) ProjectKey {
	key := NewProjectKey(path)
	if _, ok := g.paths[key]; !ok {
		g.paths[key] = path
		g.order = append(g.order, key)
	}
	return key
}

// Reachable yields root followed by every project transitively referenced from it, in
// depth-first discovery order. Cycles are traversed once.
func (g *ProjectGraph) Reachable(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[ProjectKey]bool)
		var visit func(k ProjectKey) bool
		visit = func(k ProjectKey) bool {
			if visited[k] {
				return true
			}
			visited[k] = true
			path, ok := g.paths[k]
			if !ok {
				path = k.String()
			}
			if !yield(path) {
				return false
			}
			for _, dep := range g.refs[k] {
				if !visit(dep) {
					return false
				}
			}
			return true
		}
		visit(NewProjectKey(root))
	}
}

// Validate reports the first reference cycle reachable from root.
func (g *ProjectGraph) Validate(root string) error {
	state := make(map[ProjectKey]int) // 0: unvisited, 1: visiting, 2: done
	var path []ProjectKey

	var visit func(k ProjectKey) error
	visit = func(k ProjectKey) error {
		state[k] = 1
		path = append(path, k)
		for _, dep := range g.refs[k] {
			switch state[dep] {
			case 1:
				return g.cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		state[k] = 2
		path = path[:len(path)-1]
		return nil
	}
	return visit(NewProjectKey(root))
}

func (g *ProjectGraph) cycleError(path []ProjectKey, dep ProjectKey) error {
	start := 0
	for i, k := range path {
		if k == dep {
			start = i
			break
		}
	}
	names := make([]string, 0, len(path)-start+1)
	for _, k := range path[start:] {
		names = append(names, g.paths[k])
	}
	names = append(names, g.paths[dep])
	cycle := strings.Join(names, " -> ")
	return zerr.With(zerr.Wrap(ErrProjectReferenceCycle, "project references form a cycle "+cycle), "cycle", cycle)
}
