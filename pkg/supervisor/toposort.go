// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"fmt"
	"sort"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// closure computes the fixpoint of requested plus every service transitively
// reachable from it over deps.
func closure(project tuttiapi.Project, requested []string) (map[string]bool, error) {
	set := make(map[string]bool, len(requested))
	queue := make([]string, 0, len(requested))

	for _, name := range requested {
		if !set[name] {
			set[name] = true
			queue = append(queue, name)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		svc, ok := project.Services[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
		}

		for _, dep := range svc.Deps {
			if !set[dep] {
				set[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return set, nil
}

// toposort orders closureSet by Kahn's algorithm over the deps relation,
// breaking ties alphabetically by service name both for the initial
// zero-indegree set and for nodes that newly reach indegree zero, so
// startup order is deterministic. A result shorter than closureSet
// indicates a cycle.
func toposort(project tuttiapi.Project, closureSet map[string]bool) ([]string, error) {
	indegree := make(map[string]int, len(closureSet))
	dependents := make(map[string][]string, len(closureSet))

	for name := range closureSet {
		svc := project.Services[name]
		indegree[name] = len(svc.Deps)
		for _, dep := range svc.Deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	ready := make([]string, 0, len(closureSet))
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(closureSet))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(closureSet) {
		return nil, ErrCircularDependency
	}

	return order, nil
}
