package gallery

import "sync"

// ScrollLock suppresses background scrolling while any holder is active.
// It is shared by every overlay that sits above a scrollable page.
type ScrollLock struct {
	mu      sync.Mutex
	holders int
}

// Lease is one acquisition of a ScrollLock.
type Lease struct {
	lock *ScrollLock
	once sync.Once
}

// Acquire takes the lock. The returned lease must be released exactly once;
// extra releases are ignored.
func (l *ScrollLock) Acquire() *Lease {
	l.mu.Lock()
	l.holders++
	l.mu.Unlock()
	return &Lease{lock: l}
}

// Locked reports whether background scrolling is suppressed.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}

// Release gives the lease back.
func (le *Lease) Release() {
	if le == nil {
		return
	}
	le.once.Do(func() {
		le.lock.mu.Lock()
		le.lock.holders--
		le.lock.mu.Unlock()
	})
}
