package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nasifowls01-ui/opb/internal/constants"
)

// sessionClaims is the payload of the HS256 session token carried in the
// opb_session cookie. Sub holds the player's email.
type sessionClaims struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

var (
	errMalformedToken = errors.New("malformed session token")
	errBadSignature   = errors.New("session token signature mismatch")
	errTokenExpired   = errors.New("session token expired")
)

var (
	devSecretOnce sync.Once
	devSecret     []byte
)

// sessionSecret returns the HMAC key. Without SESSION_SECRET in the
// environment a random per-process key is used, which invalidates all
// cookies on restart; fine for development, never for production.
func sessionSecret() []byte {
	if s := os.Getenv(constants.EnvSessionSecret); s != "" {
		return []byte(s)
	}
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			panic("cannot generate session secret: " + err.Error())
		}
	})
	return devSecret
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeSegment(s string) ([]byte, error) {
	// tolerate padded tokens from older clients
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

func sign(unsigned string) string {
	mac := hmac.New(sha256.New, sessionSecret())
	mac.Write([]byte(unsigned))
	return encodeSegment(mac.Sum(nil))
}

// mintSessionToken issues a compact HS256 token for the given identity.
func mintSessionToken(email, name string, ttl time.Duration) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	now := time.Now().Unix()
	payload, err := json.Marshal(sessionClaims{
		Sub:  email,
		Name: name,
		Iat:  now,
		Exp:  now + int64(ttl.Seconds()),
	})
	if err != nil {
		return "", err
	}
	unsigned := encodeSegment(header) + "." + encodeSegment(payload)
	return unsigned + "." + sign(unsigned), nil
}

// verifySessionToken checks the signature and expiry and returns the claims.
func verifySessionToken(token string) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errMalformedToken
	}
	expected := sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errBadSignature
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, errMalformedToken
	}
	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errMalformedToken
	}
	if time.Now().Unix() > claims.Exp {
		return nil, errTokenExpired
	}
	return &claims, nil
}
