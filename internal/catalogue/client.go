package catalogue

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// Query narrows List on the server side. The zero value lists every available skin.
type Query struct {
	Rarity   models.Rarity
	Weapon   string
	MinPrice *int64
	MaxPrice *int64
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Rarity != "" {
		v.Set("rarity", q.Rarity.String())
	}
	if q.Weapon != "" {
		v.Set("weapon", q.Weapon)
	}
	if q.MinPrice != nil {
		v.Set("min_price", strconv.FormatInt(*q.MinPrice, 10))
	}
	if q.MaxPrice != nil {
		v.Set("max_price", strconv.FormatInt(*q.MaxPrice, 10))
	}
	return v
}

// Client talks to the skins resource. Every call is a single attempt.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for endpoint. A zero timeout waits indefinitely.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the resource URL the client was created with
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List fetches the skins matching q
func (c *Client) List(ctx context.Context, q Query) ([]models.Skin, error) {
	target := c.endpoint
	if params := q.values().Encode(); params != "" {
		target += "?" + params
	}

	var skins []models.Skin
	if err := c.do(ctx, http.MethodGet, target, nil, &skins); err != nil {
		return nil, err
	}
	if skins == nil {
		skins = []models.Skin{}
	}
	return skins, nil
}

// Create submits a new skin and returns the ID the backend assigned
func (c *Client) Create(ctx context.Context, d models.SkinDraft) (string, error) {
	var created models.SkinCreated
	if err := c.do(ctx, http.MethodPost, c.endpoint, d, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// Update replaces the skin with s.ID by s
func (c *Client) Update(ctx context.Context, s models.Skin) error {
	return c.do(ctx, http.MethodPut, c.endpoint, s, nil)
}

// Delete removes the skin with id
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint+"?"+url.Values{"id": {id}}.Encode(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, target string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrapf(err, "build %s request", method)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WithMessagef(ErrTransport, "%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithMessagef(ErrDecode, "%s %s: %v", method, target, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		se.Message = body.Error
	}
	return se
}
