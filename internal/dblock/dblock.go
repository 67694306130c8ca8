// Package dblock serializes writers across a fixed set of logical table
// resources. Comment posting takes write intent on the comment and revision
// tables and read intent on the page registry, so revision entries for
// successful posts form a total order consistent with comment insertion
// order. The lock is process-wide and table-granular: write throughput is
// traded for a simple, auditable ordering invariant.
package dblock

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/semaphore"
)

// maxWeight bounds concurrent readers per resource. A writer acquires the
// full weight and therefore excludes readers and other writers.
const maxWeight = 1 << 30

type Resource string

const (
	Comments  Resource = "comments"
	Revisions Resource = "revisions"
	Pages     Resource = "pages"
)

// LockSet declares the intent of one acquisition: exclusive access to Write
// resources, shared access to Read resources.
type LockSet struct {
	Write []Resource
	Read  []Resource
}

type Locker struct {
	sems map[Resource]*semaphore.Weighted
}

// New builds a Locker over the given resources. Acquiring a resource the
// Locker does not know is an error, not a silent no-op.
func New(resources ...Resource) *Locker {
	sems := make(map[Resource]*semaphore.Weighted, len(resources))
	for _, r := range resources {
		sems[r] = semaphore.NewWeighted(maxWeight)
	}
	return &Locker{sems: sems}
}

// Default returns a Locker covering the resources comment posting needs.
func Default() *Locker {
	return New(Comments, Revisions, Pages)
}

type claim struct {
	resource Resource
	weight   int64
}

// Acquire takes the whole LockSet in one deterministic order and returns a
// release function. Resources are always claimed in lexical order regardless
// of how the set was declared, so two writers with overlapping sets cannot
// deadlock against each other. Acquisition blocks until the resources are
// free or ctx is done; on ctx error nothing stays held.
func (l *Locker) Acquire(ctx context.Context, set LockSet) (release func(), err error) {
	claims := make([]claim, 0, len(set.Write)+len(set.Read))
	seen := make(map[Resource]bool, len(set.Write)+len(set.Read))
	for _, r := range set.Write {
		if !seen[r] {
			seen[r] = true
			claims = append(claims, claim{resource: r, weight: maxWeight})
		}
	}
	for _, r := range set.Read {
		if !seen[r] {
			seen[r] = true
			claims = append(claims, claim{resource: r, weight: 1})
		}
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i].resource < claims[j].resource })

	held := make([]claim, 0, len(claims))
	releaseHeld := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.sems[held[i].resource].Release(held[i].weight)
		}
	}

	for _, c := range claims {
		sem, ok := l.sems[c.resource]
		if !ok {
			releaseHeld()
			return nil, fmt.Errorf("dblock: unknown resource %q", c.resource)
		}
		if err := sem.Acquire(ctx, c.weight); err != nil {
			releaseHeld()
			return nil, fmt.Errorf("dblock: acquiring %q: %w", c.resource, err)
		}
		held = append(held, c)
	}

	return releaseHeld, nil
}
