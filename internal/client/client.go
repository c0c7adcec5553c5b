// Package client is the HTTP client for the authentication service API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amitEt25/aiven-auth-assigment/internal/common"
)

// User mirrors the user objects returned by the API.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the access token obtained by the last successful
// register or login call, empty if none.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.toError(resp.StatusCode, resp.Body)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// toError maps API error responses to the shared sentinel errors so callers
// can branch with errors.Is.
func (c *Client) toError(status int, body io.Reader) error {
	var er errorResponse
	_ = json.NewDecoder(body).Decode(&er)

	switch status {
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", er.Message, common.ErrAlreadyExists)
	case http.StatusUnauthorized:
		if er.Code == "invalid_credentials" {
			return fmt.Errorf("%s: %w", er.Message, common.ErrInvalidCredentials)
		}
		return fmt.Errorf("%s: %w", er.Message, common.ErrInvalidToken)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", er.Message, common.ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", er.Message, common.ErrTooManyRequests)
	default:
		if er.Message != "" {
			return fmt.Errorf("%s: %w", er.Message, common.ErrInternal)
		}
		return fmt.Errorf("unexpected status %d: %w", status, common.ErrInternal)
	}
}

// Register creates an account and stores the returned access token for
// subsequent calls.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	req := map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return resp.User, nil
}

// Login authenticates and stores the returned access token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return resp.User, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Users(ctx context.Context) ([]*User, error) {
	var resp struct {
		Users []*User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
