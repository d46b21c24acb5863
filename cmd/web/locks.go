package main

import "sync"

// lockUser acquires the mutex for one user id, creating it on first
// use, and returns the unlock. Persisted cart/wishlist writes are
// whole-field replacements with no concurrency token, so every
// read-modify-write must run under this lock to avoid lost updates
// from concurrent tabs. Locks are never reclaimed; the map grows
// with the number of distinct users seen by this process.
func (app *application) lockUser(id string) func() {
	app.userLocks.mu.Lock()
	mu, ok := app.userLocks.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		app.userLocks.locks[id] = mu
	}
	app.userLocks.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
