package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkcut/internal/domain"
)

type URLRepository struct {
	db *pgxpool.Pool
}

func NewURLRepository(db *pgxpool.Pool) *URLRepository {
	return &URLRepository{db: db}
}

const shortURLColumns = `id, key, secret_key, target_url, clicks, is_active, owner_id, created_at`

// Insert persists a new record. A unique violation on either key column
// surfaces as domain.ErrDuplicateKey so the caller can redraw.
func (r *URLRepository) Insert(ctx context.Context, u *domain.ShortURL) error {
	query := `
		INSERT INTO short_urls (key, secret_key, target_url, clicks, is_active, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		u.Key,
		u.SecretKey,
		u.TargetURL,
		u.Clicks,
		u.IsActive,
		u.OwnerID,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pgErr.ConstraintName)
		}
		return err
	}

	return nil
}

func (r *URLRepository) GetByKey(ctx context.Context, key string) (*domain.ShortURL, error) {
	query := `SELECT ` + shortURLColumns + ` FROM short_urls WHERE key = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, key))
}

func (r *URLRepository) GetBySecretKey(ctx context.Context, secretKey string) (*domain.ShortURL, error) {
	query := `SELECT ` + shortURLColumns + ` FROM short_urls WHERE secret_key = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, secretKey))
}

// ResolveAndCount applies the active-flag gate and the click increment in
// one statement, so concurrent resolutions of the same key can never lose
// an update and a cancelled call either fully applies or not at all.
func (r *URLRepository) ResolveAndCount(ctx context.Context, key string) (*domain.ShortURL, error) {
	query := `
		UPDATE short_urls
		SET clicks = clicks + 1
		WHERE key = $1 AND is_active
		RETURNING ` + shortURLColumns

	u, err := r.scanOne(r.db.QueryRow(ctx, query, key))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// No active row: tell a switched-off record apart from a missing one.
	if _, getErr := r.GetByKey(ctx, key); getErr == nil {
		return nil, domain.ErrInactive
	} else if !errors.Is(getErr, domain.ErrNotFound) {
		return nil, getErr
	}

	return nil, domain.ErrNotFound
}

// SetActive overwrites the flag in place. Writing the current value is a
// no-op success.
func (r *URLRepository) SetActive(ctx context.Context, secretKey string, active bool) (*domain.ShortURL, error) {
	query := `
		UPDATE short_urls
		SET is_active = $2
		WHERE secret_key = $1
		RETURNING ` + shortURLColumns

	return r.scanOne(r.db.QueryRow(ctx, query, secretKey, active))
}

// ListByOwner returns the owner's records ordered by creation time, with
// the id as a tie-breaker so the order is stable.
func (r *URLRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.ShortURL, error) {
	query := `
		SELECT ` + shortURLColumns + `
		FROM short_urls
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make([]domain.ShortURL, 0)
	for rows.Next() {
		var u domain.ShortURL
		if err := rows.Scan(
			&u.ID,
			&u.Key,
			&u.SecretKey,
			&u.TargetURL,
			&u.Clicks,
			&u.IsActive,
			&u.OwnerID,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

func (r *URLRepository) scanOne(row pgx.Row) (*domain.ShortURL, error) {
	var u domain.ShortURL

	err := row.Scan(
		&u.ID,
		&u.Key,
		&u.SecretKey,
		&u.TargetURL,
		&u.Clicks,
		&u.IsActive,
		&u.OwnerID,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}
