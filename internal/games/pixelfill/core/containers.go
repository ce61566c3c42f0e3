package core

import (
	"fmt"
	"sort"
	"strings"
)

// ContainerGraph is the dependency DAG between containers of a level,
// resolved once at load time.
type ContainerGraph struct {
	order []ContainerID               // Topological order, dependencies first
	deps  map[ContainerID][]ContainerID
	cells map[ContainerID][]Coord
	names map[ContainerID]string
}

// NewContainerGraph builds the graph and checks that it is acyclic.
// Ties in the topological order are broken by ascending id.
func NewContainerGraph(l *Level) (*ContainerGraph, error) {
	g := &ContainerGraph{
		deps:  make(map[ContainerID][]ContainerID, len(l.Containers)),
		cells: make(map[ContainerID][]Coord, len(l.Containers)),
		names: make(map[ContainerID]string, len(l.Containers)),
	}

	for _, def := range l.Containers {
		g.names[def.ID] = def.Name
		deps := append([]ContainerID(nil), l.Deps[def.ID]...)
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		g.deps[def.ID] = deps
	}
	for id, deps := range l.Deps {
		if _, ok := g.names[id]; !ok {
			return nil, ValidationError{
				Code:    CodeUnknownContainer,
				Message: fmt.Sprintf("dependencies declared for undefined container %d", id),
			}
		}
		for _, dep := range deps {
			if _, ok := g.names[dep]; !ok {
				return nil, ValidationError{
					Code:    CodeUnknownDependency,
					Message: fmt.Sprintf("container %d depends on undefined container %d", id, dep),
				}
			}
		}
	}

	for r := 0; r < l.Size && r < len(l.PixelMap); r++ {
		for c := 0; c < l.Size && c < len(l.PixelMap[r]); c++ {
			if l.PixelMap[r][c] == 0 {
				continue
			}
			if id := l.containerAt(r, c); id != 0 {
				g.cells[id] = append(g.cells[id], C(r, c))
			}
		}
	}

	order, err := g.topoSort()
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

// topoSort runs Kahn's algorithm over the dependency edges.
func (g *ContainerGraph) topoSort() ([]ContainerID, error) {
	indegree := make(map[ContainerID]int, len(g.deps))
	dependents := make(map[ContainerID][]ContainerID, len(g.deps))
	for id, deps := range g.deps {
		indegree[id] += 0
		for _, dep := range deps {
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	ready := make([]ContainerID, 0)
	for id, n := range indegree {
		if n == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]ContainerID, 0, len(g.deps))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(order) != len(g.deps) {
		stuck := make([]string, 0)
		for id, n := range indegree {
			if n > 0 {
				stuck = append(stuck, fmt.Sprintf("%d", id))
			}
		}
		sort.Strings(stuck)
		return nil, ValidationError{
			Code:    CodeDependencyCycle,
			Message: "dependency cycle among containers " + strings.Join(stuck, ", "),
		}
	}
	return order, nil
}

// Order returns container ids in topological order.
func (g *ContainerGraph) Order() []ContainerID {
	return append([]ContainerID(nil), g.order...)
}

// Dependencies returns the ids a container waits on.
func (g *ContainerGraph) Dependencies(id ContainerID) []ContainerID {
	return append([]ContainerID(nil), g.deps[id]...)
}

// Cells returns the coordinates belonging to a container.
func (g *ContainerGraph) Cells(id ContainerID) []Coord {
	return append([]Coord(nil), g.cells[id]...)
}

// Name returns the container's display name.
func (g *ContainerGraph) Name(id ContainerID) string {
	return g.names[id]
}

// Solidified reports whether every cell of the container is solidified.
// A container without cells is vacuously solidified.
func (g *ContainerGraph) Solidified(grid *Grid, id ContainerID) bool {
	for _, c := range g.cells[id] {
		if !grid.At(c).Solidified {
			return false
		}
	}
	return true
}

// solidifiedIn is Solidified against an in-progress edit.
func (g *ContainerGraph) solidifiedIn(e *gridEditor, id ContainerID) bool {
	for _, c := range g.cells[id] {
		if !e.at(c).Solidified {
			return false
		}
	}
	return true
}

// propagate exposes every container whose dependencies are fully solidified
// and returns the newly exposed ids in topological order.
//
// Exposure never changes whether a cell is solidified, so the readiness of a
// container depends only on the grid and a single pass in topological order
// reaches the fixed point. The result is independent of visit order.
func (g *ContainerGraph) propagate(e *gridEditor, exposed map[ContainerID]bool) []ContainerID {
	var newly []ContainerID
	for _, id := range g.order {
		if exposed[id] {
			continue
		}
		ready := true
		for _, dep := range g.deps[id] {
			if !g.solidifiedIn(e, dep) {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		exposed[id] = true
		newly = append(newly, id)
		for _, c := range g.cells[id] {
			e.expose(c)
		}
	}
	return newly
}
