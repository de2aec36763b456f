package handlers

import (
	"codebliss/internal/apperror"
	"codebliss/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie = "accessToken"

	ctxUserID = "user_id"
	ctxClaims = "claims"
)

// AuthRequired resolves the session cookie to an existing user and stores
// the user id under ctxUserID.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(accessTokenCookie)
		if err != nil || token == "" {
			h.respondError(c, apperror.Unauthorized(services.MsgSignInRequired))
			return
		}

		claims, err := h.tokens.Parse(c.Request.Context(), token)
		if err != nil {
			h.respondError(c, err)
			return
		}

		user, err := h.users.FindByID(c.Request.Context(), claims.UserID)
		if apperror.IsKind(err, apperror.KindNotFound) {
			h.respondError(c, apperror.Unauthorized(services.MsgSessionInvalid))
			return
		}
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func currentClaims(c *gin.Context) *services.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}

// auditLog records action for the current caller.
func (h *Handler) auditLog(c *gin.Context, userID, action, entityID string, details interface{}) {
	if h.audit == nil {
		return
	}
	h.audit.LogAction(&userID, action, entityID, details, c.ClientIP(), c.Request.UserAgent())
}
