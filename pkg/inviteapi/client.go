// Package inviteapi is the typed client of the RSVP API. Every successful
// payload passes through the schema package before it is returned.
package inviteapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"invite.link/models"
	"invite.link/pkg/schema"

	"github.com/gofiber/fiber/v2"
)

// IClient is what the web handlers need from the RSVP API.
type IClient interface {
	VerifyToken(ctx context.Context, token string) (models.Group, error)
	FetchStatus(ctx context.Context, token string) (models.Group, error)
	SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error)
}

// Client talks to the RSVP API with a single attempt per call: no retries,
// no timeouts.
type Client struct {
	baseURL string
	http    *fiber.Client
}

var _ IClient = (*Client)(nil)

// NewClient returns a client for the API rooted at baseURL,
// e.g. http://localhost:8000/api.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fiber.Client{
			UserAgent:   "invite.link-web",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

// VerifyToken resolves the group behind an invitation token.
func (c *Client) VerifyToken(ctx context.Context, token string) (models.Group, error) {
	return c.getGroup(ctx, "verify", token)
}

// FetchStatus reads the current RSVP state of the group. It has no side
// effects on the backend.
func (c *Client) FetchStatus(ctx context.Context, token string) (models.Group, error) {
	return c.getGroup(ctx, "status", token)
}

// SubmitRSVP sends one RSVP intent. It is not idempotent on the backend and is
// never retried.
func (c *Client) SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error) {
	if token == "" {
		return models.RSVPResponse{}, &InvalidTokenError{}
	}
	if req.Guests == nil {
		req.Guests = []string{}
	}
	if err := req.Validate(); err != nil {
		return models.RSVPResponse{}, fmt.Errorf("rsvp request rejected before sending: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.RSVPResponse{}, err
	}

	agent := c.http.Post(c.endpoint("rsvp", token)).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		JSON(req)
	status, body, errs := agent.Bytes()
	if err := ctx.Err(); err != nil {
		return models.RSVPResponse{}, err
	}
	if len(errs) > 0 {
		return models.RSVPResponse{}, fmt.Errorf("rsvp request failed: %w", errors.Join(errs...))
	}
	if !isSuccess(status) {
		return models.RSVPResponse{}, &SubmissionError{Status: status, Message: detailOf(body)}
	}

	resp, err := schema.ParseRSVPResponse(body)
	if err != nil {
		return models.RSVPResponse{}, fmt.Errorf("rsvp response: %w", err)
	}
	return resp, nil
}

func (c *Client) getGroup(ctx context.Context, endpoint, token string) (models.Group, error) {
	if token == "" {
		return models.Group{}, &InvalidTokenError{}
	}
	if err := ctx.Err(); err != nil {
		return models.Group{}, err
	}

	agent := c.http.Get(c.endpoint(endpoint, token)).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	status, body, errs := agent.Bytes()
	if err := ctx.Err(); err != nil {
		return models.Group{}, err
	}
	if len(errs) > 0 {
		return models.Group{}, fmt.Errorf("%s request failed: %w", endpoint, errors.Join(errs...))
	}
	if !isSuccess(status) {
		return models.Group{}, &InvalidTokenError{Status: status}
	}

	group, err := schema.ParseGroup(body)
	if err != nil {
		return models.Group{}, fmt.Errorf("%s response: %w", endpoint, err)
	}
	return group, nil
}

func (c *Client) endpoint(name, token string) string {
	return c.baseURL + "/groups/" + name + "/" + url.PathEscape(token)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// detailOf pulls a string "detail" out of an error body.
func detailOf(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return DefaultSubmissionMessage
	}
	if detail, ok := payload.Detail.(string); ok && strings.TrimSpace(detail) != "" {
		return detail
	}
	return DefaultSubmissionMessage
}
