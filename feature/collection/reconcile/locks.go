package reconcile

import "sync"

// ownerLocks serializes sync runs per owner so two concurrent syncs for
// the same user never interleave writes. Different owners proceed
// independently.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[uint]*sync.Mutex)}
}

func (o *ownerLocks) get(ownerID uint) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	l, ok := o.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[ownerID] = l
	}
	return l
}
