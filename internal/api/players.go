package api

import (
	"net/http"
	"strings"

	"github.com/nasifowls01-ui/opb/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListUnits returns the unit catalog with config-sourced combat stats.
func (h *DuelHandler) ListUnits(c *gin.Context) {
	units, err := h.repo.GetUnitDefinitions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchUnits})
		return
	}
	c.JSON(http.StatusOK, units)
}

// ListLeaderboard returns the top duelists by wins.
func (h *DuelHandler) ListLeaderboard(c *gin.Context) {
	players, err := h.repo.GetTopPlayers(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}
	c.JSON(http.StatusOK, players)
}

// GetPlayerProfile returns the authenticated player's profile, roster and
// economy summary.
func (h *DuelHandler) GetPlayerProfile(c *gin.Context) {
	p, ok := h.sessionProfile(c)
	if !ok {
		return
	}
	roster, err := h.repo.GetRoster(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	eco, err := h.repo.GetEconomy(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	type rosterOut struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
		XP    int    `json:"xp"`
	}
	team := make([]rosterOut, 0, len(roster))
	for _, r := range roster {
		team = append(team, rosterOut{Name: r.Def.Name, Level: r.Level, XP: r.XP})
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":  p,
		"team":     team,
		"currency": eco.Currency,
		"xp":       eco.XP,
	})
}

type UpdateProfileRequest struct {
	PlayerName string `json:"player_name"`
}

// UpdatePlayerProfile changes the authenticated player's display name.
func (h *DuelHandler) UpdatePlayerProfile(c *gin.Context) {
	userEmail, _ := c.Get(ctxUserEmail)
	emailStr, _ := userEmail.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PlayerName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.UpdateProfileName(emailStr, strings.TrimSpace(req.PlayerName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Profile updated"})
}
