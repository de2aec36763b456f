package handlers

import (
	"net/http"
	"strings"
	"testing"

	"codebliss/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fieldMap(errs []struct {
	Field string `json:"field"`
	Error string `json:"error"`
}) map[string]string {
	m := make(map[string]string)
	for _, e := range errs {
		m[e.Field] = e.Error
	}
	return m
}

func TestSignupRequestValidate(t *testing.T) {
	valid := func() signupRequest {
		return signupRequest{
			Name:     strPtr("Ada Lovelace"),
			Username: strPtr("ada"),
			Email:    strPtr("ada@example.com"),
			Password: strPtr(testPassword),
		}
	}

	t.Run("Valid", func(t *testing.T) {
		req := valid()
		assert.Empty(t, req.Validate())
	})

	t.Run("Lengths Count Characters", func(t *testing.T) {
		req := valid()
		req.Name = strPtr("  Zoë  ")
		req.Username = strPtr(strings.Repeat("é", 32))
		assert.Empty(t, req.Validate())

		req.Name = strPtr(strings.Repeat("x", 33))
		req.Username = strPtr("ab")
		errs := req.Validate()
		require.Len(t, errs, 2)
		assert.Equal(t, "Your name cannot exceed 32 characters.", errs[0].Error)
		assert.Equal(t, "Username must be at least 3 characters long.", errs[1].Error)
	})

	t.Run("Blank Is Missing", func(t *testing.T) {
		req := valid()
		req.Name = strPtr("   ")
		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Please provide your name.", errs[0].Error)
	})

	t.Run("Email Longer Than Column", func(t *testing.T) {
		long := "user@" + strings.Repeat("a", 60) + "." + strings.Repeat("b", 60) + ".com"
		require.Greater(t, len(long), 120)

		req := valid()
		req.Email = strPtr(long)
		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
		assert.Equal(t, "Email cannot exceed 120 characters.", errs[0].Error)
	})
}

func TestProjectNameValidate(t *testing.T) {
	req := createProjectRequest{Name: strPtr("ab")}
	errs := req.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, models.MsgProjectNameTooShort, errs[0].Error)

	upd := updateNameRequest{ProjectID: strPtr("not-an-id"), NewName: strPtr(strings.Repeat("n", 33))}
	errs = upd.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, msgProjectIDInvalid, errs[0].Error)
	assert.Equal(t, models.MsgProjectNameTooLong, errs[1].Error)
}

func TestSignupLongEmailIsBadRequest(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/users/signup", gin.H{
		"name":     "Long Email",
		"username": "longemail",
		"email":    "user@" + strings.Repeat("a", 60) + "." + strings.Repeat("b", 60) + ".com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email cannot exceed 120 characters.", fieldMap(decode(t, w).Errors)["email"])
}
