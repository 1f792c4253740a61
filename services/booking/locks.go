package booking

import "sync"

// propertyLocks holds a mutex per property id. The lock is held across
// the overlap-check-and-insert sequence so two concurrent creates for
// the same property cannot both pass the overlap check.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a property, creating one if it doesn't exist.
func (s *propertyLocks) get(propertyID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[propertyID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[propertyID] = lock
	}
	return lock
}
