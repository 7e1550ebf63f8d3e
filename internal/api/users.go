package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ayush/edusync-gateway/internal/models"
)

const usersPath = "/api/UserModels"

// RegisterUser calls POST /api/UserModels with reg as is. A duplicate email
// comes back as KindConflict.
func (c *Client) RegisterUser(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	var user models.User
	err := c.do(ctx, call{op: "registerUser", method: http.MethodPost, path: usersPath, body: reg}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginUser calls POST /api/UserModels/login and returns the backend's
// auth payload untouched.
func (c *Client) LoginUser(ctx context.Context, creds models.Credentials) (json.RawMessage, error) {
	var payload json.RawMessage
	err := c.do(ctx, call{op: "loginUser", method: http.MethodPost, path: usersPath + "/login", body: creds}, &payload)
	if err != nil {
		c.logger.Printf("login request failed: %v", err)
		return nil, err
	}
	return payload, nil
}

// GetUserByID calls GET /api/UserModels/{id}.
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "getUserById"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathID(usersPath, id)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
