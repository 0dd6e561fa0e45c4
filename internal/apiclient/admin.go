package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/urlio/urlio-web/internal/model"
)

// WarnRequest is the body of POST /admin/users/{id}/warn.
type WarnRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
	URLID   *int64 `json:"url_id,omitempty"`
}

// ToggleResult is the backend's answer to a status toggle.
type ToggleResult struct {
	Message  model.Message `json:"message"`
	IsActive bool          `json:"is_active"`
}

type actionResponse struct {
	Success bool          `json:"success"`
	Message model.Message `json:"message"`
}

func userPath(userID int64, suffix string) string {
	return "/admin/users/" + strconv.FormatInt(userID, 10) + suffix
}

func linkPath(linkID int64, suffix string) string {
	return "/admin/urls/" + strconv.FormatInt(linkID, 10) + suffix
}

// AdminDashboard fetches the moderation snapshot.
func (c *Client) AdminDashboard(ctx context.Context) (*model.AdminDashboard, error) {
	var resp struct {
		Data model.AdminDashboard `json:"data"`
	}
	if err := c.do(ctx, "admin.dashboard", http.MethodGet, "/admin/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AdminUserLinks lists one user's links.
func (c *Client) AdminUserLinks(ctx context.Context, userID int64) ([]model.ShortLink, error) {
	var resp struct {
		URLs []model.ShortLink `json:"urls"`
	}
	if err := c.do(ctx, "admin.user_urls", http.MethodGet, userPath(userID, "/urls"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.URLs, nil
}

// WarnUser sends a warning, optionally tied to one of the user's links.
func (c *Client) WarnUser(ctx context.Context, userID int64, req WarnRequest) (model.Message, error) {
	req.UserID = userID
	var resp actionResponse
	if err := c.do(ctx, "admin.warn", http.MethodPost, userPath(userID, "/warn"), req, &resp); err != nil {
		return model.Message{}, err
	}
	return resp.Message, nil
}

// ToggleUserStatus flips a user's active flag on the backend.
func (c *Client) ToggleUserStatus(ctx context.Context, userID int64) (*ToggleResult, error) {
	var resp ToggleResult
	if err := c.do(ctx, "admin.toggle_status", http.MethodPost, userPath(userID, "/toggle-status"), struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword changes the calling admin's password.
func (c *Client) ChangePassword(ctx context.Context, newPassword string) (model.Message, error) {
	body := struct {
		NewPassword string `json:"new_password"`
	}{NewPassword: newPassword}

	var resp actionResponse
	if err := c.do(ctx, "admin.change_password", http.MethodPost, "/admin/change-password", body, &resp); err != nil {
		return model.Message{}, err
	}
	return resp.Message, nil
}

// FlagLink marks a link as inappropriate.
func (c *Client) FlagLink(ctx context.Context, linkID int64) (model.Message, error) {
	var resp actionResponse
	if err := c.do(ctx, "admin.flag_url", http.MethodPost, linkPath(linkID, "/flag"), struct{}{}, &resp); err != nil {
		return model.Message{}, err
	}
	return resp.Message, nil
}

// DeleteLink removes a link and its visits.
func (c *Client) DeleteLink(ctx context.Context, linkID int64) (model.Message, error) {
	var resp actionResponse
	if err := c.do(ctx, "admin.delete_url", http.MethodDelete, linkPath(linkID, ""), nil, &resp); err != nil {
		return model.Message{}, err
	}
	return resp.Message, nil
}
