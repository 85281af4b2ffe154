package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/policy"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

const authUserKey = "auth_user"

var errTokenRequired = models.ErrorUnauthorized{Kind: models.Unauthenticated, Message: "Access token required"}

// AuthMiddleware verifies the bearer token and attaches the calling account
// to the context.
func AuthMiddleware(authService services.AuthService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.SendError(c, errTokenRequired)
			return
		}

		user, err := authService.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			h.SendError(c, err)
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects callers that are not administrators.
func RequireAdmin(h *helper.HTTPHelper) gin.HandlerFunc {
	return requireRole(h, policy.IsAdmin, "Admin access required")
}

// RequireContributor rejects callers that may not author content.
func RequireContributor(h *helper.HTTPHelper) gin.HandlerFunc {
	return requireRole(h, policy.IsContributorOrAbove, "Contributor access required")
}

func requireRole(h *helper.HTTPHelper, allowed func(*models.AuthUser) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			h.SendError(c, errTokenRequired)
			return
		}

		if err := policy.Authorize(allowed(user), message); err != nil {
			h.SendError(c, err)
			return
		}

		c.Next()
	}
}

// CurrentUser returns the account attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.AuthUser, bool) {
	value, exists := c.Get(authUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.AuthUser)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
