// Package client is a Go client for the CodeBliss API that keeps the
// application state a browser session would: who is signed in, the open
// editor and a cache of read results invalidated by mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"codebliss/pkg/preview"
)

type Client struct {
	baseURL string
	http    *http.Client
	state   *State
}

type Option func(*Client)

// WithHTTPClient uses a copy of hc for requests. The copy gets its own cookie
// jar when hc has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		state:   NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

func (c *Client) State() *State {
	return c.state
}

// do sends body as JSON and decodes the response envelope. Transport and
// decode failures become an *APIError carrying GenericMessage.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: GenericMessage, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Message: GenericMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: GenericMessage, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: GenericMessage, Err: err}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = GenericMessage
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg, Fields: env.Errors}
	}
	return &env, nil
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users/signup", in)
	if err != nil {
		return nil, err
	}
	c.state.mutated(OpSignup)
	return env.User, nil
}

func (c *Client) Signin(ctx context.Context, identifier, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users/signin", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, err
	}
	c.state.setUser(env.User)
	c.state.mutated(OpSignin)
	return env.User, nil
}

// Profile refreshes the auth state from the session cookie. A 401 signs the
// local state out.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/users/profile", nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.state.setUser(nil)
		}
		return nil, err
	}
	c.state.setUser(env.User)
	return env.User, nil
}

func (c *Client) Signout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/api/users/signout", nil); err != nil {
		return err
	}
	c.state.reset()
	c.state.mutated(OpSignout)
	return nil
}

func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/projects/create", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	c.state.mutated(OpCreateProject)
	return env.Project, nil
}

func (c *Client) GetAllMyProjects(ctx context.Context) (*ProjectList, error) {
	if v, ok := c.state.cached(OpGetAllMyProjects); ok {
		return v.(*ProjectList).clone(), nil
	}

	env, err := c.do(ctx, http.MethodGet, "/api/projects/my", nil)
	if err != nil {
		return nil, err
	}
	list := &ProjectList{TotalProjects: env.TotalProjects, Projects: env.Projects}
	c.state.store(list, OpGetAllMyProjects)
	return list.clone(), nil
}

func (c *Client) GetAProject(ctx context.Context, projectID string) (*Project, error) {
	if v, ok := c.state.cached(OpGetAProject, projectID); ok {
		return v.(*Project).clone(), nil
	}

	env, err := c.do(ctx, http.MethodGet, "/api/projects/my/"+url.PathEscape(projectID), nil)
	if err != nil {
		return nil, err
	}
	if env.Project == nil {
		return nil, &APIError{Status: http.StatusOK, Message: GenericMessage}
	}
	c.state.store(env.Project, OpGetAProject, projectID)
	return env.Project.clone(), nil
}

// OpenProject loads a project into the editor.
func (c *Client) OpenProject(ctx context.Context, projectID string) (*Project, error) {
	p, err := c.GetAProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c.state.SetCurrentProject(p)
	return p, nil
}

func (c *Client) UpdateProjectName(ctx context.Context, projectID, newName string) (*Project, error) {
	env, err := c.do(ctx, http.MethodPatch, "/api/projects/update/name", map[string]string{
		"projectId": projectID,
		"newName":   newName,
	})
	if err != nil {
		return nil, err
	}
	c.state.mutated(OpUpdateProjectName)
	return env.Project, nil
}

func (c *Client) UpdateProjectCode(ctx context.Context, projectID string, code preview.Code) (*Project, error) {
	env, err := c.do(ctx, http.MethodPatch, "/api/projects/update/code", map[string]interface{}{
		"projectId": projectID,
		"code":      code,
	})
	if err != nil {
		return nil, err
	}
	c.state.mutated(OpUpdateProjectCode)
	return env.Project, nil
}

// SaveCurrentProject persists the editor's code for the open project.
func (c *Client) SaveCurrentProject(ctx context.Context) (*Project, error) {
	editor := c.state.Editor()
	if editor.CurrentProject == nil {
		return nil, &APIError{Message: "No project is open in the editor."}
	}
	p, err := c.UpdateProjectCode(ctx, editor.CurrentProject.ID, editor.CurrentProject.Code)
	if err != nil {
		return nil, err
	}
	c.state.SetCurrentProject(p)
	return p, nil
}

func (c *Client) DeleteAProject(ctx context.Context, projectID string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/projects/delete/"+url.PathEscape(projectID), nil); err != nil {
		return err
	}
	c.state.mutated(OpDeleteAProject)
	return nil
}

func (c *Client) ForkAProject(ctx context.Context, projectID string) (*Project, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/projects/fork", map[string]string{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	c.state.mutated(OpForkAProject)
	return env.Project, nil
}

// Preview renders the editor's current code as a data URI for an isolated frame.
func (c *Client) Preview() string {
	code, _ := c.state.CurrentCode()
	return preview.DataURI(code)
}

// DownloadCurrentProject writes the open project as a zip archive to w.
func (c *Client) DownloadCurrentProject(w io.Writer) (string, error) {
	editor := c.state.Editor()
	if editor.CurrentProject == nil {
		return "", &APIError{Message: "No project is open in the editor."}
	}
	if err := preview.Archive(w, editor.CurrentProject.Name, editor.CurrentProject.Code); err != nil {
		return "", err
	}
	return preview.Filename(editor.CurrentProject.Name), nil
}
