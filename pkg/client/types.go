package client

import (
	"fmt"
	"time"

	"codebliss/pkg/preview"
)

// GenericMessage is reported when the API could not be reached or answered
// with something other than a JSON envelope.
const GenericMessage = "We have encountered an issue. Please try again soon."

type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Project struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Code      preview.Code `json:"code"`
	User      string       `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (p *Project) clone() *Project {
	cp := *p
	return &cp
}

type ProjectSummary struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectList struct {
	TotalProjects int
	Projects      []ProjectSummary
}

func (l *ProjectList) clone() *ProjectList {
	return &ProjectList{
		TotalProjects: l.TotalProjects,
		Projects:      append([]ProjectSummary(nil), l.Projects...),
	}
}

type SignupInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// APIError is a failed call. Status is 0 when no HTTP response was decoded.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// envelope is the body shape of every JSON response.
type envelope struct {
	Success       bool             `json:"success"`
	Status        int              `json:"status"`
	Message       string           `json:"message"`
	Errors        []FieldError     `json:"errors"`
	User          *User            `json:"user"`
	Project       *Project         `json:"project"`
	Projects      []ProjectSummary `json:"projects"`
	TotalProjects int              `json:"totalProjects"`
}
