package domain

import "time"

// ShortURL is a single shortened link. The JSON field names are the wire
// contract consumed by the dashboard, so they must not change.
type ShortURL struct {
	ID        int64     `json:"-"`
	Key       string    `json:"key"`
	SecretKey string    `json:"secret_key"`
	TargetURL string    `json:"redir_target_url"`
	Clicks    int64     `json:"clicks"`
	IsActive  bool      `json:"is_active"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"time_metadata"`
}

type CreateBatchRequest struct {
	URLs []string `json:"urls" validate:"required,min=1"`
}

// BatchResult partitions a batch submission: records minted for the valid
// inputs and the raw strings that failed URL validation, in input order.
type BatchResult struct {
	Created []ShortURL `json:"created"`
	Invalid []string   `json:"invalid"`
}

type UpdateActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
