package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/furnimart/storefront/internal/entity"
)

// GetUser returns one user's profile, used to prefill checkout identity
// fields.
func (c *Client) GetUser(ctx context.Context, userID int) (*entity.User, error) {
	var user entity.User
	path := fmt.Sprintf("/auth/getUser/%d", userID)
	if err := c.call(ctx, http.MethodGet, path, "get_user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllUsers returns every registered user (admin view).
func (c *Client) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := c.call(ctx, http.MethodGet, "/auth/getAllUsers", "get_all_users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserDetails writes profile edits back.
func (c *Client) UpdateUserDetails(ctx context.Context, user entity.User) error {
	return c.call(ctx, http.MethodPut, "/auth/updateUserDetails", "update_user", nil, user, nil)
}
