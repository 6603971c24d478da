package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/infrastructure/cache"
)

// ContextKeyUniqueID is where the gate stores the verified session identity
// for downstream handlers.
const ContextKeyUniqueID = "unique_id"

// TokenVerifier validates a session token and resolves the profile's
// unique_id. Any error means the caller is treated as anonymous.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// OnboardingFlagSource is the single profile-store read the gate performs per
// request.
type OnboardingFlagSource interface {
	GetOnboardingComplete(ctx context.Context, uniqueID string) (bool, error)
}

// GateMiddleware classifies every request as Anonymous, Onboarding or Active
// and enforces the route allow-list for that state.
type GateMiddleware struct {
	verifier   TokenVerifier
	flags      OnboardingFlagSource
	flagCache  *cache.OnboardingFlagCache
	cookieName string
}

func NewGateMiddleware(
	verifier TokenVerifier,
	flags OnboardingFlagSource,
	flagCache *cache.OnboardingFlagCache,
	cookieName string,
) *GateMiddleware {
	return &GateMiddleware{
		verifier:   verifier,
		flags:      flags,
		flagCache:  flagCache,
		cookieName: cookieName,
	}
}

// anonymousAllowed are the only paths reachable with no valid session.
var anonymousAllowed = map[string]bool{
	"/":                true,
	"/sign-in":         true,
	"/sign-up":         true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// activeDenied are the paths an onboarded session is bounced away from.
var activeDenied = map[string]bool{
	"/sign-in":    true,
	"/sign-up":    true,
	"/onboarding": true,
}

func onboardingAllowed(path string) bool {
	return path == "/onboarding" || strings.HasPrefix(path, "/api/onboarding/")
}

// Gate runs before any handler logic. The decision is a pure function of
// (session validity, onboarding flag, path).
func (m *GateMiddleware) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" {
			c.Next()
			return
		}

		uniqueID, ok := m.identify(c)
		if !ok {
			// Anonymous
			if !anonymousAllowed[path] {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Set(ContextKeyUniqueID, uniqueID)

		if !m.onboardingComplete(c, uniqueID) {
			// Onboarding
			if !onboardingAllowed(path) {
				c.Redirect(http.StatusFound, "/onboarding")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		// Active. Onboarding endpoints are off limits too, or a completed
		// profile could resubmit and rename itself.
		if activeDenied[path] || onboardingAllowed(path) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// identify resolves the session token from the usernameID cookie, falling
// back to a bearer header. Verification errors are indistinguishable from no
// session.
func (m *GateMiddleware) identify(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = header[7:]
		}
	}
	if token == "" {
		return "", false
	}

	uniqueID, err := m.verifier.VerifyToken(c.Request.Context(), token)
	if err != nil || uniqueID == "" {
		return "", false
	}
	return uniqueID, true
}

// onboardingComplete reads the flag, cache first. A failed or empty store
// read counts as incomplete, degrading into the most restrictive reachable
// state instead of failing the request. No retries.
func (m *GateMiddleware) onboardingComplete(c *gin.Context, uniqueID string) bool {
	if complete, hit := m.flagCache.Get(c.Request.Context(), uniqueID); hit {
		return complete
	}

	complete, err := m.flags.GetOnboardingComplete(c.Request.Context(), uniqueID)
	if err != nil {
		return false
	}
	m.flagCache.Set(c.Request.Context(), uniqueID, complete)
	return complete
}
