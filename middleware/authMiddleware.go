package middleware

import (
	"net/http"
	"strings"

	"filter-delivery-backend/helpers"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := bearerToken(c)
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authorization token is missing"})
			c.Abort()
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": err.Error()})
			c.Abort()
			return
		}
		c.Set(authUserKey, models.AuthUser{
			User_id: claims.Uid,
			Name:    claims.Name,
			Email:   claims.Email,
			Role:    claims.Role,
		})
		c.Next()
	}
}

// bearerToken reads Authorization: Bearer <token>, falling back to the bare
// "token" header older clients still send.
func bearerToken(c *gin.Context) string {
	header := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Request.Header.Get("token")
}

// AuthUserFrom returns the identity the auth middleware stored.
func AuthUserFrom(c *gin.Context) (models.AuthUser, bool) {
	value, ok := c.Get(authUserKey)
	if !ok {
		return models.AuthUser{}, false
	}
	user, ok := value.(models.AuthUser)
	return user, ok
}

// RoleAllowed is the whole authorization decision: does the caller's role
// appear in the required set. An empty required set allows everyone.
func RoleAllowed(role string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// Authorize gates a route group on a fixed set of roles.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := AuthUserFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "not authenticated"})
			c.Abort()
			return
		}
		if !RoleAllowed(user.Role, roles) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "role " + user.Role + " may not access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
