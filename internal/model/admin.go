package model

// Statistics are the service-wide totals on the admin dashboard.
type Statistics struct {
	TotalUsers  int64 `json:"total_users"`
	TotalURLs   int64 `json:"total_urls"`
	TotalClicks int64 `json:"total_clicks"`
}

// UserSummary is one row of the admin user table.
type UserSummary struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	URLCount    int64     `json:"url_count"`
	TotalClicks int64     `json:"total_clicks"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   Timestamp `json:"created_at"`
}

// FlaggedLink is a link an admin marked as inappropriate.
type FlaggedLink struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	Username    string    `json:"username"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   Timestamp `json:"created_at"`
}

// AdminDashboard is the snapshot behind the admin page. It is always
// replaced wholesale after a mutating action.
type AdminDashboard struct {
	Statistics   Statistics    `json:"statistics"`
	Users        []UserSummary `json:"users"`
	FlaggedLinks []FlaggedLink `json:"flagged_urls"`
}

// User returns the row for userID, or nil.
func (d *AdminDashboard) User(userID int64) *UserSummary {
	if d == nil {
		return nil
	}
	for i := range d.Users {
		if d.Users[i].ID == userID {
			return &d.Users[i]
		}
	}
	return nil
}

// Warning is an admin notice delivered to a user.
type Warning struct {
	ID        int64      `json:"id"`
	Message   string     `json:"message"`
	URL       *ShortLink `json:"url,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt Timestamp  `json:"created_at"`
}
