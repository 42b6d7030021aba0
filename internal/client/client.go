// ABOUTME: HTTP client for the CyrLab REST API
// ABOUTME: Attaches the stored bearer token and unwraps the response envelope

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/egl-devs/cyrlab-admin/internal/tokenstore"
)

// TokenSource supplies the bearer token at call time. Only the session
// manager writes the token; the client reads it per request.
type TokenSource interface {
	Get() string
}

// Client is the API client for the CyrLab backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

var _ TokenSource = (*tokenstore.Store)(nil)

// New creates a client for the given base URL. The token source is consulted
// on every authenticated request.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// envelope is the {success, data?, message?} wrapper used by the CRUD
// endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// loginResponse is the body of a login attempt. Rejections arrive either as
// a non-2xx status or as {success:false, message}.
type loginResponse struct {
	Token   string `json:"token"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// Login calls POST /api/auth/login and returns the issued bearer token.
// Rejected credentials produce an AuthError carrying the server message;
// transport failures produce a NetworkError.
func (c *Client) Login(ctx context.Context, userName, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"userName": userName,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&lr); decodeErr != nil {
		if !isSuccess(resp.StatusCode) {
			return "", &AuthError{Message: fmt.Sprintf("login failed with status %d", resp.StatusCode)}
		}
		return "", fmt.Errorf("invalid response from server: %w", decodeErr)
	}

	if !isSuccess(resp.StatusCode) || (lr.Success != nil && !*lr.Success) {
		msg := lr.Message
		if msg == "" {
			msg = fmt.Sprintf("login failed with status %d", resp.StatusCode)
		}
		return "", &AuthError{Message: msg}
	}

	if lr.Token == "" {
		return "", &AuthError{Message: "no token received from server"}
	}

	return lr.Token, nil
}

// CurrentUser calls GET /api/auth/me with the stored token. Any failure is
// an AuthError: the token is invalid, expired, or unknown to the server.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &AuthError{Message: fmt.Sprintf("failed to fetch user info, status %d", resp.StatusCode)}
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	if user.ID == "" {
		return nil, &AuthError{Message: "server did not return a user identity"}
	}

	return &user, nil
}

// Logout calls POST /api/auth/logout to invalidate the token remotely.
// Callers treat this as best-effort; local teardown proceeds regardless.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newAuthedRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("logout returned status %d", resp.StatusCode)}
	}
	return nil
}

// ListUsers calls GET /api/Users with pagination and search parameters.
func (c *Client) ListUsers(ctx context.Context, page, pageSize int, search string) (*PaginatedUsers, error) {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("searchTerm", search)

	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/api/Users?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := c.unwrapEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var users PaginatedUsers
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	return &users, nil
}

// GetUser calls GET /api/Users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/api/Users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := c.unwrapEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	return &user, nil
}

// CreateUser calls POST /api/Users and returns the server message.
func (c *Client) CreateUser(ctx context.Context, input *CreateUserRequest) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	return c.mutate(ctx, http.MethodPost, "/api/Users", input)
}

// UpdateUser calls PUT /api/Users/{id} and returns the server message.
func (c *Client) UpdateUser(ctx context.Context, id string, input *UpdateUserRequest) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	return c.mutate(ctx, http.MethodPut, "/api/Users/"+url.PathEscape(id), input)
}

// DeleteUser calls DELETE /api/Users/{id} and returns the server message.
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/Users/"+url.PathEscape(id), nil)
}

// ListRoles calls GET /api/Roles. The response is a bare array, not an
// envelope.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/api/Roles", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.handleErrorStatus(resp)
	}

	var roles []Role
	if err := json.NewDecoder(resp.Body).Decode(&roles); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	return roles, nil
}

// mutate sends an enveloped write and returns the envelope message.
func (c *Client) mutate(ctx context.Context, method, path string, input interface{}) (string, error) {
	var body *bytes.Reader
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := c.newAuthedRequest(ctx, method, path, body)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", c.handleErrorStatus(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("invalid response from server: %w", err)
	}
	if !env.Success {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env.Message, nil
}

// newAuthedRequest builds a request with the bearer token drawn from the
// token source at call time.
func (c *Client) newAuthedRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.tokens.Get())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// handleRequestError converts transport failures to the error taxonomy.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return &NetworkError{URL: c.baseURL, Err: err}
}

// handleErrorStatus maps a non-2xx response to AuthError or APIError,
// surfacing the envelope message when one is present.
func (c *Client) handleErrorStatus(resp *http.Response) error {
	var env envelope
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		msg = env.Message
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if msg == "" {
			msg = "session expired, please sign in again"
		}
		return &AuthError{Message: msg}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// unwrapEnvelope validates status and envelope, returning the data payload.
func (c *Client) unwrapEnvelope(resp *http.Response) (json.RawMessage, error) {
	if !isSuccess(resp.StatusCode) {
		return nil, c.handleErrorStatus(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
