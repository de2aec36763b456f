package handlers

import (
	"errors"
	"strings"

	"codebliss/internal/apperror"
	"codebliss/internal/models"
	"codebliss/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const (
	msgProjectIDRequired = "Please provide project ID."
	msgProjectIDInvalid  = "Please provide valid project ID."
	msgWeakPassword      = "Password must be at least 8 characters long. It must include at least one uppercase letter, one lowercase letter, one digit and one special character."
)

var validate = validator.New()

// fieldErrors accumulates rejected fields for one request.
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, msg string) {
	*f = append(*f, apperror.FieldError{Field: field, Error: msg})
}

// required returns the trimmed value of v, or records msg when v is absent
// or blank.
func (f *fieldErrors) required(field string, v *string, msg string) (string, bool) {
	if v == nil {
		f.add(field, msg)
		return "", false
	}
	value := strings.TrimSpace(*v)
	if validate.Var(value, "required") != nil {
		f.add(field, msg)
		return "", false
	}
	return value, true
}

// rule runs v through the validator tag and records the message keyed by
// the first failing tag.
func (f *fieldErrors) rule(field, v, tag string, messages map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(validate.Var(v, tag), &verrs) || len(verrs) == 0 {
		return
	}
	msg, ok := messages[verrs[0].Tag()]
	if !ok {
		msg = field + " is invalid."
	}
	f.add(field, msg)
}

func (f *fieldErrors) projectID(field string, v *string) string {
	id, ok := f.required(field, v, msgProjectIDRequired)
	if ok && !utils.IsID(id) {
		f.add(field, msgProjectIDInvalid)
	}
	return id
}

var projectNameMessages = map[string]string{
	"min": models.MsgProjectNameTooShort,
	"max": models.MsgProjectNameTooLong,
}

func (f *fieldErrors) projectName(field, name string) {
	f.rule(field, name, "min=3,max=32", projectNameMessages)
}

type signupRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *signupRequest) Validate() []apperror.FieldError {
	var errs fieldErrors

	if name, ok := errs.required("name", r.Name, "Please provide your name."); ok {
		errs.rule("name", name, "min=3,max=32", map[string]string{
			"min": "Your name must be at least 3 characters long.",
			"max": "Your name cannot exceed 32 characters.",
		})
	}
	if username, ok := errs.required("username", r.Username, "Please provide your username."); ok {
		errs.rule("username", username, "min=3,max=32", map[string]string{
			"min": "Username must be at least 3 characters long.",
			"max": "Username cannot exceed 32 characters.",
		})
	}
	if email, ok := errs.required("email", r.Email, "Please provide your email."); ok {
		errs.rule("email", email, "max=120,email", map[string]string{
			"email": "Please provide a valid email address.",
			"max":   "Email cannot exceed 120 characters.",
		})
	}
	if r.Password == nil {
		errs.add("password", "Please provide your password.")
	} else if len(*r.Password) > utils.MaxPasswordBytes {
		errs.add("password", "Password cannot exceed 72 bytes.")
	} else if !utils.IsStrongPassword(*r.Password) {
		errs.add("password", msgWeakPassword)
	}

	return errs
}

type signinRequest struct {
	Identifier *string `json:"identifier"`
	Password   *string `json:"password"`
}

func (r *signinRequest) Validate() []apperror.FieldError {
	var errs fieldErrors
	errs.required("identifier", r.Identifier, "Please provide your username or email.")
	if r.Password == nil {
		errs.add("password", "Please provide your password.")
	}
	return errs
}

type createProjectRequest struct {
	Name *string `json:"name"`
}

func (r *createProjectRequest) Validate() []apperror.FieldError {
	var errs fieldErrors
	if name, ok := errs.required("name", r.Name, "Please provide project name."); ok {
		errs.projectName("name", name)
	}
	return errs
}

type projectIDRequest struct {
	ProjectID *string `json:"projectId"`
}

func (r *projectIDRequest) Validate() []apperror.FieldError {
	var errs fieldErrors
	errs.projectID("projectId", r.ProjectID)
	return errs
}

type updateNameRequest struct {
	ProjectID *string `json:"projectId"`
	NewName   *string `json:"newName"`
}

func (r *updateNameRequest) Validate() []apperror.FieldError {
	var errs fieldErrors
	errs.projectID("projectId", r.ProjectID)
	if name, ok := errs.required("newName", r.NewName, "Please provide new name for the project."); ok {
		errs.projectName("newName", name)
	}
	return errs
}

type codeInput struct {
	HTML       *string `json:"html"`
	CSS        *string `json:"css"`
	JavaScript *string `json:"javascript"`
}

// Code converts to the stored form; absent fields become empty.
func (in *codeInput) Code() models.Code {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return models.Code{
		HTML:       deref(in.HTML),
		CSS:        deref(in.CSS),
		JavaScript: deref(in.JavaScript),
	}
}

type updateCodeRequest struct {
	ProjectID *string    `json:"projectId"`
	Code      *codeInput `json:"code"`
}

func (r *updateCodeRequest) Validate() []apperror.FieldError {
	var errs fieldErrors
	errs.projectID("projectId", r.ProjectID)
	switch {
	case r.Code == nil:
		errs.add("code", "Please provide code for the project.")
	case r.Code.Code().IsBlank():
		errs.add("code", models.EmptyCodeMessage)
	}
	return errs
}

// pathProjectID validates the :projectId route parameter.
func pathProjectID(raw string) (string, error) {
	var errs fieldErrors
	id := errs.projectID("projectId", &raw)
	if len(errs) > 0 {
		return "", apperror.Validation(errs...)
	}
	return id, nil
}
