package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"codebliss/internal/apperror"
	"codebliss/internal/repository"

	"github.com/gin-gonic/gin"
)

var errRouteNotFound = apperror.NotFound("The requested resource could not be found.")

// typeMessages are shown when a JSON field has the wrong type.
var typeMessages = map[string]string{
	"name":            "Project name must be a string.",
	"newName":         "Project name must be a string.",
	"username":        "Username must be a string.",
	"email":           "Email must be a string.",
	"password":        "Password must be a string.",
	"identifier":      "Username or Email must be a string.",
	"projectId":       "Project ID must be a string.",
	"code":            "Please provide code using an object format that includes html, css and javascript as keys.",
	"code.html":       "Please provide valid HTML code as a string.",
	"code.css":        "Please provide valid CSS code as a string.",
	"code.javascript": "Please provide valid JavaScript code as a string.",
}

func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{
		"success": true,
		"status":  status,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func writeError(c *gin.Context, status int, message string, fields []apperror.FieldError) {
	body := gin.H{
		"success": false,
		"status":  status,
		"message": message,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}

// respondError is the single place errors become HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)

	if appErr, ok := apperror.As(err); ok {
		if appErr.Kind == apperror.KindInternal {
			h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		}
		writeError(c, appErr.Status(), appErr.Message, appErr.Fields)
		return
	}

	if field, value, ok := repository.DuplicateKey(err); ok {
		writeError(c, http.StatusBadRequest, duplicateKeyMessage(field, value), nil)
		return
	}

	switch {
	case errors.As(err, &maxErr):
		writeError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body must not exceed %d bytes.", maxErr.Limit), nil)
	case errors.As(err, &typeErr):
		msg, ok := typeMessages[typeErr.Field]
		if !ok {
			msg = fmt.Sprintf("%s has an invalid type.", typeErr.Field)
		}
		writeError(c, http.StatusBadRequest, apperror.ValidationMessage,
			[]apperror.FieldError{{Field: typeErr.Field, Error: msg}})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		writeError(c, http.StatusBadRequest, "Please provide a valid JSON request body.", nil)
	default:
		h.logger.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
		writeError(c, http.StatusInternalServerError, apperror.GenericMessage, nil)
	}
}

// duplicateKeyMessage names whatever the driver reported about the
// conflicting value.
func duplicateKeyMessage(field, value string) string {
	switch {
	case field != "" && value != "":
		return fmt.Sprintf("The value %s for the field %s already exists.", value, field)
	case field != "":
		return fmt.Sprintf("The value for the field %s already exists.", field)
	default:
		return "This value already exists."
	}
}

// bind decodes the JSON body into req and runs its validator.
func bind(c *gin.Context, req interface{ Validate() []apperror.FieldError }) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperror.Validation(fields...)
	}
	return nil
}
