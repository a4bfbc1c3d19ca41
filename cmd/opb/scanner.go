package main

import (
	"time"

	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/service"
	"github.com/nasifowls01-ui/opb/internal/session"
)

// startDeadlineScanner drives every time-based transition: forfeited turns,
// the post-attack pacing window and expired challenge prompts. All player
// waits are bounded; nothing in the engine blocks indefinitely.
func startDeadlineScanner(repo service.Repo, store *session.Store, challenges *session.Challenges, decisionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			service.ExpireChallenges(challenges, now)
			for _, id := range store.Expired(now) {
				if _, err := service.HandleTimedOutSession(repo, store, id, now, decisionTimeout); err != nil {
					logging.Error("deadline scanner failed to handle session", err, logging.Fields{constants.LogFieldSessionID: id})
				}
			}
		}
	}()
}
