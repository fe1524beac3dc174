package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/spicevilla/spice-villa-api/config"
)

// Session roles carried in the token's role claim
const (
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

// SessionCookie is the cookie the session token is stored in
const SessionCookie = "session"

// SessionTTL is how long an issued session token stays valid
const SessionTTL = 12 * time.Hour

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session token for the given role. For delivery
// sessions the subject is the delivery person's database id.
func IssueSessionToken(role, subject, name string) (string, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.SessionSecret == "" {
		return "", errors.New("session secret is not configured")
	}

	now := time.Now()
	claims := SessionClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// ParseSessionToken validates a raw token and returns its claims
func ParseSessionToken(raw string) (*SessionClaims, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.SessionSecret == "" {
		return nil, errors.New("session secret is not configured")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// RequireRole is a middleware that validates the session token on every
// request and checks the role claim. The token is read from the session
// cookie or from an Authorization: Bearer header.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Login required",
				},
			})
			c.Abort()
			return
		}

		claims, err := ParseSessionToken(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SESSION",
					"message": "Session is invalid or expired",
				},
			})
			c.Abort()
			return
		}

		if claims.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Set("session_role", claims.Role)
		c.Set("session_subject", claims.Subject)
		c.Set("session_name", claims.Name)
		c.Next()
	}
}

// SetSessionCookie attaches the session token to the response. The
// cookie is marked Secure in production so it only travels over HTTPS.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(SessionTTL.Seconds()), "/", "", secureCookies(), true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", secureCookies(), true)
}

func secureCookies() bool {
	cfg := config.GetConfig()
	return cfg != nil && cfg.IsProduction()
}

// GetSessionSubject extracts the session subject from the Gin context
func GetSessionSubject(c *gin.Context) (string, error) {
	subject, exists := c.Get("session_subject")
	if !exists {
		return "", &AuthError{Code: "MISSING_SESSION", Message: "Session subject not found in context"}
	}

	subjectStr, ok := subject.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_SESSION", Message: "Session subject is not a string"}
	}

	return subjectStr, nil
}

// tokenFromRequest pulls the raw session token from the cookie or the
// Authorization header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authz := c.GetHeader("Authorization")
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
