package translate

import (
	"fmt"
	"sync"
)

// nameRegistry hands out output folder names unique within a run. The
// first addon to claim a title gets it verbatim; later claimants get the
// title with their id appended. Ids are unique, so appended names never
// collide either.
type nameRegistry struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{
		used: make(map[string]struct{}),
	}
}

func (r *nameRegistry) Reserve(title, id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := title
	if _, taken := r.used[name]; taken {
		name = fmt.Sprintf("%s [%s]", title, id)
	}
	r.used[name] = struct{}{}

	return name
}
