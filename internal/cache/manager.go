package cache

import "time"

// Cleaner is any cache that can drop entries past their gc window.
type Cleaner interface {
	CleanExpired() int
}

// Manager runs the periodic garbage collection loop over the registered
// caches. Entries removed here free memory only; staleness is decided at
// read time by the cache itself.
type Manager struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Register adds a cache to the gc loop. Not safe to call after
// StartCleanup.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup launches the gc loop, sweeping every interval.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.run(interval)
}

func (m *Manager) run(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-m.stop:
			return
		}
	}
}

// Stop ends the gc loop and waits for the in-flight sweep to finish.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done
}
