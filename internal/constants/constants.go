package constants

// Centralized constants for env keys, routes and API error strings.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "DUEL_CONFIG"
	EnvDBPath              = "DUEL_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Session / Cookie names
	CookieSessionName = "opb_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteUnits              = "/units"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerProfile      = "/players/me"
	RouteChallenges         = "/challenges"
	RouteChallengeAccept    = "/challenges/:challengeID/accept"
	RouteChallengeDecline   = "/challenges/:challengeID/decline"
	RouteDuelByID           = "/duels/:sessionID"
	RouteDuelDecision       = "/duels/:sessionID/decisions"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyNotice  = "notice"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrSelfChallenge       = "You can't duel yourself"
	ErrBotOpponent         = "You can't duel bots"
	ErrNoRoster            = "You need a team before you can duel"
	ErrOpponentNoRoster    = "Opponent doesn't have a team set up yet"
	ErrThrottleExceeded    = "You've already dueled this player 3 times today"
	ErrChallengeNotFound   = "Challenge not found or expired"
	ErrNotChallengeTarget  = "Only the challenged player can respond"
	ErrSessionNotFound     = "Duel not found"
	ErrPlayerNotFound      = "Player not found"
	ErrFailedFetchUnits    = "Failed to fetch units"
	ErrFailedFetchBoard    = "Failed to fetch leaderboard"
	ErrFailedFetchProfile  = "Failed to fetch profile"
	ErrFailedCreateDuel    = "Failed to create duel"
	ErrFailedStoreDecision = "Failed to store decision"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldSessionID   = "session_id"
	LogFieldChallengeID = "challenge_id"
	LogFieldPlayer      = "player"
	LogFieldOpponent    = "opponent"
	LogFieldState       = "state"
	LogFieldName        = "name"
	LogFieldAddr        = "addr"
)
