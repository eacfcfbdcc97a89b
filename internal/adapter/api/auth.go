package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

const authBase = "/api/auth"

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	var session domain.Session
	err := c.call(ctx, request{
		method:  http.MethodPost,
		path:    authBase + "/register",
		payload: reg,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var session domain.Session
	err := c.call(ctx, request{
		method:  http.MethodPost,
		path:    authBase + "/login",
		payload: creds,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Me returns the profile behind token. The API answers with either the
// bare profile or {"user": {...}}.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   authBase + "/me",
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		User *domain.User `json:"user"`
	}
	trimmed := bytes.TrimSpace(data)
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}

	var user domain.User
	if err := json.Unmarshal(trimmed, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}
