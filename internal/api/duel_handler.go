package api

import (
	"net/http"
	"time"

	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/session"
	"github.com/nasifowls01-ui/opb/internal/storage"

	"github.com/gin-gonic/gin"
)

// DuelHandler groups all duel-related HTTP handlers.
type DuelHandler struct {
	repo             storage.Repository
	store            *session.Store
	challenges       *session.Challenges
	decisionTimeout  time.Duration
	challengeTimeout time.Duration
	resolveDelay     time.Duration
}

// NewDuelHandler creates a DuelHandler with the given repository, live
// session registries and configured engine timings.
func NewDuelHandler(repo storage.Repository, store *session.Store, challenges *session.Challenges, decisionTimeout, challengeTimeout, resolveDelay time.Duration) *DuelHandler {
	return &DuelHandler{
		repo:             repo,
		store:            store,
		challenges:       challenges,
		decisionTimeout:  decisionTimeout,
		challengeTimeout: challengeTimeout,
		resolveDelay:     resolveDelay,
	}
}

// sessionProfile resolves the authenticated player's profile, writing the
// error response itself when the session is unusable.
func (h *DuelHandler) sessionProfile(c *gin.Context) (*duel.PlayerProfile, bool) {
	userEmail, _ := c.Get(ctxUserEmail)
	emailStr, _ := userEmail.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return nil, false
	}
	p, err := h.repo.GetProfileByEmail(emailStr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return nil, false
	}
	return p, true
}
