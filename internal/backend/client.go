package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"statusplay/internal/models"
)

var (
	// ErrUnavailable indicates the request never produced a usable response
	// (connection refused, timeout, non-2xx status)
	ErrUnavailable = errors.New("backend unavailable")
	// ErrBadResponse indicates the backend answered but the body did not
	// decode into the expected shape
	ErrBadResponse = errors.New("backend returned malformed response")
)

// Client talks to the upstream club API. A snapshot fetch either returns
// the complete Snapshot shape or an error; partial objects are never
// handed to the caller.
type Client struct {
	Base string
	HTTP *http.Client
}

// New creates a backend client for the given API base URL
func New(base string) *Client {
	return &Client{
		Base: base,
		HTTP: &http.Client{Timeout: 6 * time.Second},
	}
}

// PresenceResult is the response to a presence change. Team is set when
// joining assigned the player to a team.
type PresenceResult struct {
	Team string `json:"team,omitempty"`
}

// FetchSnapshot retrieves the full dashboard snapshot for a user
func (c *Client) FetchSnapshot(ctx context.Context, user string) (*models.Snapshot, error) {
	u := fmt.Sprintf("%s/dashboard?user=%s", c.Base, url.QueryEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s -> %d", ErrUnavailable, u, resp.StatusCode)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &snap, nil
}

// SetPresence marks the user in or out for the current session. Joining
// may return the team the backend assigned the player to.
func (c *Client) SetPresence(ctx context.Context, user string, status models.Presence) (*PresenceResult, error) {
	endpoint := "/leave"
	if status == models.PresenceIn {
		endpoint = "/join"
	}

	body, err := c.post(ctx, endpoint, map[string]string{"name": user})
	if err != nil {
		return nil, err
	}

	var result PresenceResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &result, nil
}

// SaveProfile persists the user's contact fields. Only the success
// indicator matters; the backend defines no response body.
func (c *Client) SaveProfile(ctx context.Context, user string, profile models.Profile) error {
	payload := map[string]string{
		"name":  user,
		"email": profile.Email,
		"phone": profile.Phone,
		"slots": profile.Slots,
	}
	_, err := c.post(ctx, "/profile", payload)
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	u := c.Base + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %v", ErrUnavailable, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: POST %s -> %d", ErrUnavailable, u, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return buf.Bytes(), nil
}
