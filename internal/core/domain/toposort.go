package domain

import "go.trai.ch/zerr"

// TopoSort produces a total publish order over the given packages using
// Kahn's algorithm: every package appears after all of its intra-workspace
// dependencies. Ties among independent packages are broken by input order.
//
// In-degrees are derived from the graph's dependent lists rather than by
// counting each package's own dependency fields, so the order is consistent
// with exactly the edges the graph recorded.
func TopoSort(packages []*PackageRecord, graph map[string][]string) ([]string, error) {
	inDegree := make(map[string]int, len(packages))
	for _, pkg := range packages {
		inDegree[pkg.Name] = 0
	}
	for _, dependents := range graph {
		for _, dependent := range dependents {
			inDegree[dependent]++
		}
	}

	queue := make([]string, 0, len(packages))
	for _, pkg := range packages {
		if inDegree[pkg.Name] == 0 {
			queue = append(queue, pkg.Name)
		}
	}

	order := make([]string, 0, len(packages))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, dependent := range graph[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) < len(packages) {
		return nil, zerr.With(ErrCycleDetected, "sorted", len(order))
	}
	return order, nil
}
