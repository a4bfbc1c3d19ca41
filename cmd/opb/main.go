package main

import (
	"os"

	"github.com/nasifowls01-ui/opb/internal/api"
	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the unit catalog and engine timings. Path may be provided via
	// DUEL_CONFIG or defaults to ./duel_config.json in the current working
	// directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./duel_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via DUEL_DB. Default to a `data/`
	// directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/opb.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.Units)

	store := session.NewStore()
	challenges := session.NewChallenges()
	handler := api.NewDuelHandler(repo, store, challenges, cfg.DecisionTimeout, cfg.ChallengeTimeout, cfg.ResolveDelay)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: forfeits timed-out turns, finishes pacing windows
	// and withdraws expired challenges.
	startDeadlineScanner(repo, store, challenges, cfg.DecisionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET("/version", api.Version)
		apiRoutes.GET(constants.RouteUnits, handler.ListUnits)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerProfile, handler.GetPlayerProfile)
		protected.POST(constants.RoutePlayerProfile, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteChallenges, handler.ProposeChallenge)
		protected.POST(constants.RouteChallengeAccept, handler.AcceptChallenge)
		protected.POST(constants.RouteChallengeDecline, handler.DeclineChallenge)
		protected.GET(constants.RouteDuelByID, handler.GetDuel)
		protected.POST(constants.RouteDuelDecision, handler.SubmitDecision)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
