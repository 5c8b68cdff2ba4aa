package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"linkcut/internal/domain"
)

type ClickRepository struct {
	db *pgxpool.Pool
}

func NewClickRepository(db *pgxpool.Pool) *ClickRepository {
	return &ClickRepository{db: db}
}

func (r *ClickRepository) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	query := `
		INSERT INTO short_url_clicks (short_url_id, user_agent, referer, ip_address, device_type)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		click.ShortURLID,
		click.UserAgent,
		click.Referer,
		click.IPAddress,
		click.DeviceType,
	)
	return err
}

// Stats aggregates click activity for one link. TotalClicks comes from the
// authoritative counter on the record, not from the event table.
func (r *ClickRepository) Stats(ctx context.Context, shortURLID int64, days int) (*domain.LinkStats, error) {
	stats := &domain.LinkStats{}

	query := `
		SELECT
			u.key,
			u.target_url,
			u.clicks,
			u.created_at,
			MAX(c.clicked_at) AS last_clicked_at
		FROM short_urls u
		LEFT JOIN short_url_clicks c ON u.id = c.short_url_id
		WHERE u.id = $1
		GROUP BY u.id, u.key, u.target_url, u.clicks, u.created_at
	`

	var lastClickedAt *time.Time
	err := r.db.QueryRow(ctx, query, shortURLID).Scan(
		&stats.Key,
		&stats.TargetURL,
		&stats.TotalClicks,
		&stats.CreatedAt,
		&lastClickedAt,
	)
	if err != nil {
		return nil, err
	}
	stats.LastClickedAt = lastClickedAt

	clicksByDate, err := r.clicksByDate(ctx, shortURLID, days)
	if err != nil {
		return nil, err
	}
	stats.ClicksByDate = clicksByDate

	deviceStats, err := r.deviceStats(ctx, shortURLID)
	if err != nil {
		return nil, err
	}
	stats.DeviceStats = *deviceStats

	return stats, nil
}

func (r *ClickRepository) clicksByDate(ctx context.Context, shortURLID int64, days int) ([]domain.ClicksByDate, error) {
	query := `
		SELECT
			DATE(clicked_at) AS date,
			COUNT(*) AS count
		FROM short_url_clicks
		WHERE short_url_id = $1
			AND clicked_at >= NOW() - INTERVAL '1 day' * $2
		GROUP BY DATE(clicked_at)
		ORDER BY date DESC
		LIMIT 30
	`

	rows, err := r.db.Query(ctx, query, shortURLID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ClicksByDate
	for rows.Next() {
		var cbd domain.ClicksByDate
		var date time.Time
		if err := rows.Scan(&date, &cbd.Count); err != nil {
			return nil, err
		}
		cbd.Date = date.Format("2006-01-02")
		results = append(results, cbd)
	}

	return results, rows.Err()
}

func (r *ClickRepository) deviceStats(ctx context.Context, shortURLID int64) (*domain.DeviceStats, error) {
	query := `
		SELECT
			COALESCE(device_type, 'unknown') AS device_type,
			COUNT(*) AS count
		FROM short_url_clicks
		WHERE short_url_id = $1
		GROUP BY device_type
	`

	rows, err := r.db.Query(ctx, query, shortURLID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.DeviceStats{}
	for rows.Next() {
		var deviceType string
		var count int64
		if err := rows.Scan(&deviceType, &count); err != nil {
			return nil, err
		}

		switch deviceType {
		case "mobile":
			stats.Mobile = count
		case "desktop":
			stats.Desktop = count
		case "tablet":
			stats.Tablet = count
		case "bot":
			stats.Bot = count
		default:
			stats.Unknown = count
		}
	}

	return stats, rows.Err()
}
