// Package client is the Go consumer of the TwistList API. It pairs a plain
// HTTP client with an optimistic task cache (see TaskCache) that mirrors the
// browser data-sync behavior: apply first, roll back on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string

	// OnUnauthorized fires on any 401 response; the browser client's
	// redirect-to-login analog.
	OnUnauthorized func()
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SetToken switches the client to bearer authentication. The session cookie
// set at signin keeps working regardless; the header takes effect for
// non-browser use where the cookie jar has nothing.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Auth

func (c *Client) Signup(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

func (c *Client) Signin(ctx context.Context, emailOrUsername, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", map[string]string{
		"emailOrUsername": emailOrUsername,
		"password":        password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Users

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, updates map[string]string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/profile", updates, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	path := "/users/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Teams

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, http.MethodGet, "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, teamName string) (*Team, error) {
	var team Team
	err := c.do(ctx, http.MethodPost, "/teams", map[string]string{"teamName": teamName}, &team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) RequestJoin(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+teamID+"/join", nil, nil)
}

func (c *Client) AcceptRequest(ctx context.Context, teamID, requestID string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+teamID+"/requests/"+requestID+"/accept", nil, nil)
}

func (c *Client) RejectRequest(ctx context.Context, teamID, requestID string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+teamID+"/requests/"+requestID+"/reject", nil, nil)
}

func (c *Client) AddMember(ctx context.Context, teamID, usernameOrEmail string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+teamID+"/members",
		map[string]string{"usernameOrEmail": usernameOrEmail}, nil)
}

func (c *Client) LeaveTeam(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/teams/leave", nil, nil)
}

func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+teamID, nil, nil)
}

// Projects

func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, project *Project) (*Project, error) {
	var created Project
	if err := c.do(ctx, http.MethodPost, "/projects", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Tasks

func (c *Client) Tasks(ctx context.Context, filter *TaskFilter) ([]Task, error) {
	path := "/tasks"
	if filter != nil && filter.ProjectID != "" {
		path += "?projectId=" + url.QueryEscape(filter.ProjectID)
	}
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, task map[string]interface{}) (*Task, error) {
	var created Task
	if err := c.do(ctx, http.MethodPost, "/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error) {
	var updated Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *Client) ReorderTasks(ctx context.Context, updates []PositionUpdate) error {
	return c.do(ctx, http.MethodPatch, "/tasks/reorder", updates, nil)
}
