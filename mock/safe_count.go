package mock

import "sync"

// SafeCount provides a safe counter, useful for call counts on mocked
// services.
type SafeCount struct {
	mu  sync.Mutex
	val int
}

// IncrFn increments the safe counter and returns a done function, suitable
// for use as:
//
//	defer s.CreateFlavorCalls.IncrFn()()
func (s *SafeCount) IncrFn() func() {
	s.mu.Lock()
	s.val++
	return s.mu.Unlock
}

// Count returns the current count.
func (s *SafeCount) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}
