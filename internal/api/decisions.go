package api

import (
	"net/http"

	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/service"
	"github.com/nasifowls01-ui/opb/internal/session"

	"github.com/gin-gonic/gin"
)

type DecisionRequest struct {
	UnitIndex   *int   `json:"unit_index"`
	Attack      string `json:"attack"`
	TargetIndex *int   `json:"target_index"`
	PromptRef   string `json:"prompt_ref"`
}

// SubmitDecision feeds one player choice into the session's state machine.
// Misdirected or stale decisions come back 200 with a transient notice and
// no state change; they are never surfaced as errors.
func (h *DuelHandler) SubmitDecision(c *gin.Context) {
	p, ok := h.sessionProfile(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	d := service.Decision{
		UnitIndex:   req.UnitIndex,
		Attack:      duel.AttackKind(req.Attack),
		TargetIndex: req.TargetIndex,
		PromptRef:   req.PromptRef,
	}
	res, err := service.SubmitDecision(h.repo, h.store, c.Param("sessionID"), p.PlayerUUID, d, h.decisionTimeout, h.resolveDelay)
	if err != nil {
		if err == session.ErrSessionNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreDecision})
		return
	}

	out := gin.H{"view": res.View}
	if res.Ignored {
		out[constants.JSONKeyNotice] = res.Notice
	}
	if res.Settlement != nil {
		out["settlement"] = res.Settlement
	}
	c.JSON(http.StatusOK, out)
}

// GetDuel returns the read-only session view for rendering.
func (h *DuelHandler) GetDuel(c *gin.Context) {
	if _, ok := h.sessionProfile(c); !ok {
		return
	}
	var v service.View
	err := h.store.With(c.Param("sessionID"), func(s *duel.Session) error {
		v = service.BuildView(s)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		return
	}
	c.JSON(http.StatusOK, v)
}
