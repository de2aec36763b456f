package handlers

import (
	"fmt"
	"net/http"

	"codebliss/internal/models"
	"codebliss/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(accessTokenCookie, value, maxAge, "/", "", true, true)
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.users.Signup(c.Request.Context(), services.SignupDTO{
		Name:     *req.Name,
		Username: *req.Username,
		Email:    *req.Email,
		Password: *req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, user.ID, models.ActionSignup, user.Username, nil)

	respond(c, http.StatusCreated,
		fmt.Sprintf("Welcome aboard, %s! Your account has been successfully created.", user.Name),
		gin.H{"user": user.Profile()})
}

func (h *Handler) Signin(c *gin.Context) {
	var req signinRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, token, err := h.users.Signin(c.Request.Context(), *req.Identifier, *req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.tokens.TTL().Seconds()))
	h.auditLog(c, user.ID, models.ActionSignin, user.Username, nil)

	respond(c, http.StatusOK,
		fmt.Sprintf("Login successful. Welcome back, %s!", user.Name),
		gin.H{"user": user.Profile()})
}

func (h *Handler) Signout(c *gin.Context) {
	if err := h.tokens.Revoke(c.Request.Context(), currentClaims(c)); err != nil {
		h.logger.Warn("Signing out without server-side revocation", "error", err)
	}

	h.setSessionCookie(c, "", -1)
	h.auditLog(c, currentUserID(c), models.ActionSignout, currentUserID(c), nil)

	respond(c, http.StatusOK, "See you later! You've been logged out successfully.", nil)
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Your profile details have been fetched successfully.",
		gin.H{"user": user.Profile()})
}
