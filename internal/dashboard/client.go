package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
)

// Client is the dashboard's view of the backend user API. Every call carries
// a short timeout so a dead backend degrades the page instead of hanging it.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type BackendServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type BackendStats struct {
	TotalUsers    int                `json:"total_users"`
	RequestCount  int64              `json:"request_count"`
	StartedAt     string             `json:"started_at"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	ServiceInfo   BackendServiceInfo `json:"service_info"`
	Timestamp     string             `json:"timestamp"`
}

type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)

	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)

	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var out struct {
		Users []user.User `json:"users"`
		Count int         `json:"count"`
	}

	if err := c.getJSON(ctx, "/api/users", &out); err != nil {
		return nil, err
	}

	return out.Users, nil
}

func (c *Client) Stats(ctx context.Context) (BackendStats, error) {
	var out BackendStats

	err := c.getJSON(ctx, "/api/stats", &out)

	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req user.CreateUserRequest) error {
	body, err := json.Marshal(req)

	if err != nil {
		return fmt.Errorf("encode create user request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/users", bytes.NewReader(body))

	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)

	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return backendError(resp)
	}

	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	url := c.baseURL + "/api/users/" + strconv.FormatInt(id, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)

	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)

	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return backendError(resp)
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)

	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)

	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}

	return nil
}

func backendError(resp *http.Response) error {
	var body apiErrorBody

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, body.Error.Message)
	}

	return fmt.Errorf("backend returned %d", resp.StatusCode)
}
