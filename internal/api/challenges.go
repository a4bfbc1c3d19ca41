package api

import (
	"net/http"

	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/nasifowls01-ui/opb/internal/service"

	"github.com/gin-gonic/gin"
)

type ChallengeRequest struct {
	OpponentUUID string `json:"opponent_uuid"`
	ChannelRef   string `json:"channel_ref"`
}

// ProposeChallenge validates and registers a duel proposal. Validation
// failures (self-challenge, bot opponent, missing rosters, daily throttle)
// are reported synchronously to the initiator; no session is created.
func (h *DuelHandler) ProposeChallenge(c *gin.Context) {
	p, ok := h.sessionProfile(c)
	if !ok {
		return
	}
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OpponentUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	ch, err := service.ProposeChallenge(h.repo, h.challenges, p.PlayerUUID, req.OpponentUUID, req.ChannelRef, h.challengeTimeout)
	if err != nil {
		switch err {
		case service.ErrSelfChallenge:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSelfChallenge})
		case service.ErrBotOpponent:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBotOpponent})
		case service.ErrNoRoster:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoRoster})
		case service.ErrOpponentNoRoster:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOpponentNoRoster})
		case service.ErrThrottleExceeded, service.ErrChallengePending:
			c.JSON(http.StatusTooManyRequests, gin.H{constants.JSONKeyError: constants.ErrThrottleExceeded})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateDuel})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"challenge_id": ch.ID,
		"opponent":     ch.OpponentName,
		"deadline":     ch.Deadline,
	})
}

// AcceptChallenge consumes the pending challenge and starts the duel.
func (h *DuelHandler) AcceptChallenge(c *gin.Context) {
	p, ok := h.sessionProfile(c)
	if !ok {
		return
	}
	s, err := service.AcceptChallenge(h.repo, h.challenges, h.store, c.Param("challengeID"), p.PlayerUUID, h.decisionTimeout)
	if err != nil {
		switch err {
		case service.ErrChallengeNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrChallengeNotFound})
		case service.ErrNotChallengeTarget:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotChallengeTarget})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateDuel})
		}
		return
	}
	v := service.BuildView(s)
	c.JSON(http.StatusCreated, v)
}

// DeclineChallenge withdraws the proposal; a distinct terminal transition
// prior to any session existing.
func (h *DuelHandler) DeclineChallenge(c *gin.Context) {
	p, ok := h.sessionProfile(c)
	if !ok {
		return
	}
	if _, err := service.DeclineChallenge(h.challenges, c.Param("challengeID"), p.PlayerUUID); err != nil {
		switch err {
		case service.ErrChallengeNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrChallengeNotFound})
		case service.ErrNotChallengeTarget:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotChallengeTarget})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Challenge declined"})
}
