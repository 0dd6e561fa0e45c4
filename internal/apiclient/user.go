package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/urlio/urlio-web/internal/model"
)

type shortenRequest struct {
	OriginalURL string `json:"original_url"`
}

// PublicShorten shortens a URL anonymously.
func (c *Client) PublicShorten(ctx context.Context, originalURL string) (*model.ShortenResult, error) {
	var resp model.ShortenResult
	if err := c.do(ctx, "public.shorten", http.MethodPost, "/public/shorten", shortenRequest{OriginalURL: originalURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shorten shortens a URL on behalf of the token in ctx.
func (c *Client) Shorten(ctx context.Context, originalURL string) (*model.ShortenResult, error) {
	var resp model.ShortenResult
	if err := c.do(ctx, "user.shorten", http.MethodPost, "/user/shorten", shortenRequest{OriginalURL: originalURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches analytics for one of the caller's short codes.
func (c *Client) Stats(ctx context.Context, shortCode string) (*model.ClickStats, error) {
	if shortCode == "" {
		return nil, fmt.Errorf("user.stats: empty short code: %w", ErrInvalidArgument)
	}
	var resp model.ClickStats
	path := "/user/stats/" + url.PathEscape(shortCode)
	if err := c.do(ctx, "user.stats", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Links lists the caller's links, newest first as the backend orders them.
func (c *Client) Links(ctx context.Context) ([]model.ShortLink, error) {
	var resp []model.ShortLink
	if err := c.do(ctx, "user.urls", http.MethodGet, "/user/urls", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Warnings lists the caller's admin warnings. The backend may answer with
// a bare list or wrap it as {"warnings":[…]}.
func (c *Client) Warnings(ctx context.Context) ([]model.Warning, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "user.warnings", http.MethodGet, "/user/warnings", nil, &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var list []model.Warning
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("user.warnings: decode response: %w", err)
		}
		return list, nil
	}

	var wrapped struct {
		Warnings []model.Warning `json:"warnings"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("user.warnings: decode response: %w", err)
	}
	return wrapped.Warnings, nil
}

// MarkWarningRead acknowledges one warning.
func (c *Client) MarkWarningRead(ctx context.Context, warningID int64) error {
	path := "/user/warnings/" + strconv.FormatInt(warningID, 10) + "/mark-read"
	return c.do(ctx, "user.warnings.mark_read", http.MethodPost, path, struct{}{}, nil)
}
