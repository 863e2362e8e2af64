// Package replayguard tracks webhook digests seen inside the replay window.
// A repeated digest is evidence of a replayed delivery, but a replay with a
// valid signature is still acknowledged upstream; the guard only feeds logs
// and metrics.
package replayguard

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Guard remembers digests for one replay window. Safe for concurrent use.
type Guard struct {
	seen *cache.Cache
}

func New(window time.Duration) *Guard {
	return &Guard{
		seen: cache.New(window, 2*window),
	}
}

// Observe records a digest and reports whether it was already seen inside
// the window.
func (g *Guard) Observe(digest string) bool {
	// Add fails when the key already exists and has not expired.
	err := g.seen.Add(digest, struct{}{}, cache.DefaultExpiration)
	return err != nil
}
