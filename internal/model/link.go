package model

import "sort"

// ShortLink is a shortened URL as listed on the user dashboard.
type ShortLink struct {
	ID          int64     `json:"id,omitempty"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   Timestamp `json:"created_at"`
	IsFlagged   bool      `json:"is_flagged"`
	QRCodePath  string    `json:"qr_code_path,omitempty"`
}

// ShortenResult is the backend's answer to a shorten call: the new link
// plus a human-readable, possibly localized, confirmation.
type ShortenResult struct {
	ShortLink
	Message Message `json:"message"`
}

// Visit is one entry of a link's recent visit history.
type Visit struct {
	Country   string    `json:"country"`
	CreatedAt Timestamp `json:"created_at"`
	IPAddress string    `json:"ip_address,omitempty"`
}

// ClickStats is the analytics snapshot for one short code.
type ClickStats struct {
	ShortCode    string           `json:"short_code"`
	OriginalURL  string           `json:"original_url"`
	ClickCount   int64            `json:"click_count"`
	CreatedAt    Timestamp        `json:"created_at"`
	CountryStats map[string]int64 `json:"country_stats"`
	RecentVisits []Visit          `json:"recent_visits"`
}

// CountryCount is one row of a country breakdown.
type CountryCount struct {
	Country string
	Count   int64
}

// Countries returns the country breakdown ordered by count, highest first.
// Ties are ordered by country name so the rendering is stable.
func (s *ClickStats) Countries() []CountryCount {
	out := make([]CountryCount, 0, len(s.CountryStats))
	for country, count := range s.CountryStats {
		out = append(out, CountryCount{Country: country, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})
	return out
}
