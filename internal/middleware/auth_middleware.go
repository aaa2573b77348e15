package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend-go/internal/identity"
)

// identityContextKey is the gin context key under which the verified
// Identity is stored.
const identityContextKey = "identity"

// ErrorResponse is a local definition for standardized error messages,
// mirroring internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for Firebase token
// authentication.
type AuthMiddleware struct {
	verifier *identity.Verifier
}

// NewAuthMiddleware creates a new AuthMiddleware instance. A nil verifier
// is a setup error; the application cannot secure routes without one.
func NewAuthMiddleware(verifier *identity.Verifier) *AuthMiddleware {
	if verifier == nil {
		log.Fatal("CRITICAL_ERROR: identity verifier is not initialized for AuthMiddleware.")
	}
	return &AuthMiddleware{verifier: verifier}
}

// VerifyToken verifies a Firebase ID token from the Authorization header
// and stores the derived Identity in the context. Requests without a valid
// token are rejected with 401.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := m.verify(c)
		if !ok {
			return
		}
		c.Set(identityContextKey, ident)
		c.Next()
	}
}

// OptionalToken verifies the Authorization header when present but never
// rejects the request. Public read endpoints use it so responses can still
// be personalized (e.g. per-comment delete affordances) for signed-in
// visitors.
func (m *AuthMiddleware) OptionalToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if ident, err := m.parse(c); err == nil {
				c.Set(identityContextKey, ident)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) verify(c *gin.Context) (*identity.Identity, bool) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
		return nil, false
	}
	ident, err := m.parse(c)
	if err != nil {
		log.Printf("AuthMiddleware: error verifying Firebase ID token: %v", err)
		// Generic message to the client; details stay server-side.
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
		return nil, false
	}
	return ident, true
}

func (m *AuthMiddleware) parse(c *gin.Context) (*identity.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errMalformedAuthHeader
	}
	return m.verifier.Verify(c.Request.Context(), parts[1])
}

var errMalformedAuthHeader = errors.New("authorization header format must be 'Bearer {token}'")

// CurrentIdentity returns the verified Identity stored by VerifyToken or
// OptionalToken, if any.
func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	raw, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}
	ident, ok := raw.(*identity.Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}

// SetIdentity stores an Identity in the context. Exposed for handler
// tests.
func SetIdentity(c *gin.Context, ident *identity.Identity) {
	c.Set(identityContextKey, ident)
}
