package backend

import (
	"context"
	"net/http"

	"github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
)

// Login exchanges credentials for a token and the seller record.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var result models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateToken asks the backend whether the current session token is still
// accepted. Network failures are errors; a clean 401 is just "not valid".
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/auth/validate", nil, nil, nil)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUnauthorized {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
