package middleware

import (
	"net/http"
	"os"
	"strings"

	"partner-portal-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Roles carried in session tokens.
const (
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

type Claims struct {
	OrgID   string `json:"org_id,omitempty"`
	OrgName string `json:"org_name,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Partner tokens stop working the moment the account disappears or is
		// deactivated, not at token expiry.
		if claims.Role == RolePartner {
			var org models.Organization
			if err := db.Where("org_id = ?", claims.OrgID).First(&org).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Organization not found"})
				c.Abort()
				return
			}
			if !org.IsActivated {
				c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
				c.Abort()
				return
			}
		}

		c.Set("orgID", claims.OrgID)
		c.Set("orgName", claims.OrgName)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireAdmin restricts a route to back-office reviewer tokens.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(string) != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
