package session

import (
	"errors"
	"sync"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

var ErrChallengeNotFound = errors.New("challenge not found")

// Challenges is the registry of duel proposals waiting for the opponent's
// response. A challenge leaves the registry exactly once: accepted, declined
// or expired.
type Challenges struct {
	mu      sync.Mutex
	pending map[string]*duel.Challenge
}

func NewChallenges() *Challenges {
	return &Challenges{pending: make(map[string]*duel.Challenge)}
}

// Add registers a pending challenge under its ID.
func (c *Challenges) Add(ch *duel.Challenge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[ch.ID] = ch
}

// Get returns the pending challenge without removing it.
func (c *Challenges) Get(id string) (*duel.Challenge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.pending[id]
	return ch, ok
}

// Take atomically removes and returns the challenge, so accept and decline
// cannot both win the same proposal.
func (c *Challenges) Take(id string) (*duel.Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.pending[id]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	delete(c.pending, id)
	return ch, nil
}

// Expired removes and returns every challenge whose deadline passed. The
// caller withdraws the corresponding prompts; no session is created.
func (c *Challenges) Expired(now time.Time) []*duel.Challenge {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*duel.Challenge
	for id, ch := range c.pending {
		if !now.Before(ch.Deadline) {
			out = append(out, ch)
			delete(c.pending, id)
		}
	}
	return out
}

// PendingAgainst counts live proposals between the two players, in either
// direction. Used to stop duplicate challenge spam before a response.
func (c *Challenges) PendingAgainst(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ch := range c.pending {
		if (ch.ChallengerUUID == a && ch.OpponentUUID == b) || (ch.ChallengerUUID == b && ch.OpponentUUID == a) {
			n++
		}
	}
	return n
}
