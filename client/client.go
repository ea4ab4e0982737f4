package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/portalgun"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "portalgun-client",
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) do(ctx context.Context, method, path string, body, response any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if response == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func (c *Client) ListCharacters(ctx context.Context, dimension string) ([]portalgun.Character, error) {
	path := "/api/characters"
	if dimension != "" {
		path += "?dimension=" + url.QueryEscape(dimension)
	}
	var characters []portalgun.Character
	err := c.do(ctx, http.MethodGet, path, nil, &characters)
	return characters, err
}

func (c *Client) CreateCharacter(ctx context.Context, req portalgun.CreateCharacterRequest) (portalgun.Character, error) {
	var character portalgun.Character
	err := c.do(ctx, http.MethodPost, "/api/characters", req, &character)
	return character, err
}

func (c *Client) UpdateCharacter(ctx context.Context, id string, req portalgun.UpdateCharacterRequest) (portalgun.Character, error) {
	var character portalgun.Character
	err := c.do(ctx, http.MethodPut, "/api/characters/"+url.PathEscape(id), req, &character)
	return character, err
}

func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/characters/"+url.PathEscape(id), nil, nil)
}

func (c *Client) MoveCharacter(ctx context.Context, id, targetDimension string) (portalgun.Character, error) {
	var character portalgun.Character
	err := c.do(
		ctx, http.MethodPost, "/api/characters/"+url.PathEscape(id)+"/move",
		portalgun.MoveCharacterRequest{TargetDimension: targetDimension},
		&character,
	)
	return character, err
}

func (c *Client) ListStones(ctx context.Context) ([]portalgun.Stone, error) {
	var stones []portalgun.Stone
	err := c.do(ctx, http.MethodGet, "/api/stones", nil, &stones)
	return stones, err
}

func (c *Client) Steal(ctx context.Context) (portalgun.StealResult, error) {
	var result portalgun.StealResult
	err := c.do(ctx, http.MethodPost, "/api/rick-prime/steal", nil, &result)
	return result, err
}

func (c *Client) RandomInsult(ctx context.Context) (string, error) {
	var insult portalgun.InsultResponse
	err := c.do(ctx, http.MethodGet, "/api/insults/random", nil, &insult)
	return insult.Insult, err
}

func (c *Client) Health(ctx context.Context) (portalgun.ServiceStatus, error) {
	var status portalgun.ServiceStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, &status)
	return status, err
}
