package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkcut/internal/domain"
	"linkcut/internal/logger"
	"linkcut/pkg/generator"
	"linkcut/pkg/validator"
)

const (
	// maxKeyAttempts bounds the redraw loop on key collisions. Hitting
	// the bound with random 7-character keys means something is broken,
	// so it surfaces as domain.ErrKeyspaceExhausted instead of looping.
	maxKeyAttempts = 5

	// missTTL is how long a not-found/inactive outcome shields postgres
	// from repeated lookups of the same key.
	missTTL = 30 * time.Second

	// clickTimeout caps the detached click event insert.
	clickTimeout = 5 * time.Second
)

type URLRepository interface {
	Insert(ctx context.Context, u *domain.ShortURL) error
	GetByKey(ctx context.Context, key string) (*domain.ShortURL, error)
	GetBySecretKey(ctx context.Context, secretKey string) (*domain.ShortURL, error)
	ResolveAndCount(ctx context.Context, key string) (*domain.ShortURL, error)
	SetActive(ctx context.Context, secretKey string, active bool) (*domain.ShortURL, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ShortURL, error)
}

type ResolveCache interface {
	IsMiss(ctx context.Context, key string) (bool, error)
	MarkMiss(ctx context.Context, key string, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type ClickRepository interface {
	RecordClick(ctx context.Context, click *domain.ClickRequest) error
	Stats(ctx context.Context, shortURLID int64, days int) (*domain.LinkStats, error)
}

type ShortenerService struct {
	urlRepo   URLRepository
	cache     ResolveCache
	clickRepo ClickRepository
}

func NewShortenerService(urlRepo URLRepository, cache ResolveCache, clickRepo ClickRepository) *ShortenerService {
	return &ShortenerService{
		urlRepo:   urlRepo,
		cache:     cache,
		clickRepo: clickRepo,
	}
}

// CreateBatch mints one record per valid input URL, in input order. Blank
// strings are skipped silently, strings that are not absolute http(s)
// URLs land verbatim in the invalid partition, and neither ever aborts
// the call. A storage fault aborts the whole batch with a terminal error
// and no partial created partition.
func (s *ShortenerService) CreateBatch(ctx context.Context, ownerID string, rawURLs []string) (*domain.BatchResult, error) {
	log := logger.FromContext(ctx)

	result := &domain.BatchResult{
		Created: make([]domain.ShortURL, 0, len(rawURLs)),
		Invalid: make([]string, 0),
	}

	for _, raw := range rawURLs {
		target := strings.TrimSpace(raw)
		if target == "" {
			continue
		}

		if !validator.IsHTTPURL(target) {
			log.Warn("skipping invalid url", "url", raw)
			result.Invalid = append(result.Invalid, raw)
			continue
		}

		u, err := s.createOne(ctx, ownerID, target)
		if err != nil {
			return nil, err
		}

		result.Created = append(result.Created, *u)
	}

	log.Info("processed url batch",
		"owner_id", ownerID,
		"submitted", len(rawURLs),
		"created", len(result.Created),
		"invalid", len(result.Invalid),
	)

	return result, nil
}

func (s *ShortenerService) createOne(ctx context.Context, ownerID, target string) (*domain.ShortURL, error) {
	var lastErr error

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key, err := generator.Generate(generator.KeyLength)
		if err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}

		secretKey, err := generator.Generate(generator.SecretKeyLength)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}

		u := &domain.ShortURL{
			Key:       key,
			SecretKey: secretKey,
			TargetURL: target,
			IsActive:  true,
			OwnerID:   ownerID,
		}

		err = s.urlRepo.Insert(ctx, u)
		if err == nil {
			// A probe for this key within the last missTTL could have
			// left a stale miss entry behind.
			if cacheErr := s.cache.Invalidate(ctx, key); cacheErr != nil {
				logger.FromContext(ctx).Warn("resolve cache invalidation failed", "key", key, "error", cacheErr)
			}
			return u, nil
		}

		if errors.Is(err, domain.ErrDuplicateKey) {
			lastErr = err
			continue
		}

		return nil, fmt.Errorf("insert short url: %w", err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", domain.ErrKeyspaceExhausted, maxKeyAttempts, lastErr)
}

// Resolve looks up key and, when the record is active, counts the click
// before returning; resolving counts even if the caller never follows
// the redirect. Inactive and missing keys return their sentinel with no
// side effect on the counter.
func (s *ShortenerService) Resolve(ctx context.Context, key string, click *domain.ClickRequest) (*domain.ShortURL, error) {
	log := logger.FromContext(ctx)

	if miss, err := s.cache.IsMiss(ctx, key); err != nil {
		log.Warn("resolve cache unavailable", "error", err)
	} else if miss {
		return nil, domain.ErrNotFound
	}

	u, err := s.urlRepo.ResolveAndCount(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInactive) {
			if cacheErr := s.cache.MarkMiss(ctx, key, missTTL); cacheErr != nil {
				log.Warn("resolve cache unavailable", "error", cacheErr)
			}
		}
		return nil, err
	}

	if click != nil {
		click.ShortURLID = u.ID
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), clickTimeout)
			defer cancel()

			if err := s.clickRepo.RecordClick(ctx, click); err != nil {
				log.Warn("failed to record click event", "key", key, "error", err)
			}
		}()
	}

	return u, nil
}

// ListOwned returns the caller's records ordered by creation time.
func (s *ShortenerService) ListOwned(ctx context.Context, ownerID string) ([]domain.ShortURL, error) {
	return s.urlRepo.ListByOwner(ctx, ownerID)
}

// SetActive toggles a record after verifying the caller owns it. The
// ownership check always runs before any mutation.
func (s *ShortenerService) SetActive(ctx context.Context, ownerID, secretKey string, active bool) (*domain.ShortURL, error) {
	u, err := s.urlRepo.GetBySecretKey(ctx, secretKey)
	if err != nil {
		return nil, err
	}

	if u.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.urlRepo.SetActive(ctx, secretKey, active)
	if err != nil {
		return nil, err
	}

	// A reactivated key must stop being served from the miss cache.
	if cacheErr := s.cache.Invalidate(ctx, updated.Key); cacheErr != nil {
		logger.FromContext(ctx).Warn("resolve cache invalidation failed", "key", updated.Key, "error", cacheErr)
	}

	return updated, nil
}

// Stats returns click aggregates for an owned record.
func (s *ShortenerService) Stats(ctx context.Context, ownerID, secretKey string, days int) (*domain.LinkStats, error) {
	u, err := s.urlRepo.GetBySecretKey(ctx, secretKey)
	if err != nil {
		return nil, err
	}

	if u.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	return s.clickRepo.Stats(ctx, u.ID, days)
}
