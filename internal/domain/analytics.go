package domain

import "time"

// ShortURLClick is one recorded resolution of an active link. Events are
// best-effort; the authoritative counter lives on ShortURL.Clicks.
type ShortURLClick struct {
	ID         int64     `json:"id"`
	ShortURLID int64     `json:"short_url_id"`
	ClickedAt  time.Time `json:"clicked_at"`
	UserAgent  string    `json:"user_agent"`
	Referer    string    `json:"referer"`
	IPAddress  string    `json:"ip_address"`
	DeviceType string    `json:"device_type"`
}

type ClickRequest struct {
	ShortURLID int64
	UserAgent  string
	Referer    string
	IPAddress  string
	DeviceType string
}

type LinkStats struct {
	Key           string         `json:"key"`
	TargetURL     string         `json:"redir_target_url"`
	TotalClicks   int64          `json:"total_clicks"`
	LastClickedAt *time.Time     `json:"last_clicked_at"`
	CreatedAt     time.Time      `json:"time_metadata"`
	ClicksByDate  []ClicksByDate `json:"clicks_by_date"`
	DeviceStats   DeviceStats    `json:"device_stats"`
}

type ClicksByDate struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DeviceStats struct {
	Mobile  int64 `json:"mobile"`
	Desktop int64 `json:"desktop"`
	Tablet  int64 `json:"tablet"`
	Bot     int64 `json:"bot"`
	Unknown int64 `json:"unknown"`
}
