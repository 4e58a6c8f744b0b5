// Package officer implements the passcode gate in front of officer-only
// mutations: passcode verification plus a per-client-address lockout for
// repeated failures.
package officer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
)

const (
	// maxAttempts is the failed-attempt ceiling before an address is locked out.
	maxAttempts = 5
	// lockoutWindow is how long the lockout lasts after the most recent failure.
	lockoutWindow = time.Minute
)

// attempt tracks failed passcode attempts for one client address.
type attempt struct {
	count       int
	lastAttempt time.Time
}

// Gate verifies the officer passcode and rate-limits failed attempts per
// client address. The attempt table is process-local and lost on restart;
// that weakness is accepted rather than persisted.
type Gate struct {
	secret string
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string]*attempt
}

// NewGate constructs a Gate for the configured passcode. The clock is
// injected so tests can step time across the lockout window; production
// callers pass time.Now.
func NewGate(secret string, now func() time.Time) *Gate {
	return &Gate{
		secret:   secret,
		now:      now,
		attempts: make(map[string]*attempt),
	}
}

// IsRateLimited reports whether addr has exhausted its attempts within the
// lockout window. A record older than the window is discarded, so the next
// failure starts a fresh count.
func (g *Gate) IsRateLimited(addr string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isRateLimitedLocked(addr)
}

func (g *Gate) isRateLimitedLocked(addr string) bool {
	record, ok := g.attempts[addr]
	if !ok {
		return false
	}
	if g.now().Sub(record.lastAttempt) > lockoutWindow {
		delete(g.attempts, addr)
		return false
	}
	return record.count >= maxAttempts
}

// RecordFailedAttempt increments addr's failure count and refreshes its
// last-attempt instant.
func (g *Gate) RecordFailedAttempt(addr string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	record, ok := g.attempts[addr]
	if !ok {
		record = &attempt{}
		g.attempts[addr] = record
	}
	record.count++
	record.lastAttempt = g.now()
}

// ClearFailedAttempts removes addr's record entirely.
func (g *Gate) ClearFailedAttempts(addr string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attempts, addr)
}

// Verify checks the submitted passcode for the given client address.
// A limited address is rejected before the comparison is attempted.
// Failure records the attempt; success clears the address's record.
func (g *Gate) Verify(addr, passcode string) error {
	g.mu.Lock()
	limited := g.isRateLimitedLocked(addr)
	g.mu.Unlock()
	if limited {
		return fmt.Errorf("%w: too many attempts, please wait a minute", domain.ErrRateLimited)
	}

	passcode = strings.TrimSpace(passcode)
	if passcode == "" {
		return fmt.Errorf("%w: passcode is required", domain.ErrValidation)
	}

	if passcode != g.secret {
		g.RecordFailedAttempt(addr)
		return domain.ErrAuthorization
	}

	g.ClearFailedAttempts(addr)
	return nil
}
