package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkcut/internal/domain"
	"linkcut/internal/logger"
	"linkcut/internal/middleware"
	"linkcut/pkg/detector"
	"linkcut/pkg/response"
	"linkcut/pkg/validator"
)

type ShortenerService interface {
	CreateBatch(ctx context.Context, ownerID string, rawURLs []string) (*domain.BatchResult, error)
	Resolve(ctx context.Context, key string, click *domain.ClickRequest) (*domain.ShortURL, error)
	ListOwned(ctx context.Context, ownerID string) ([]domain.ShortURL, error)
	SetActive(ctx context.Context, ownerID, secretKey string, active bool) (*domain.ShortURL, error)
	Stats(ctx context.Context, ownerID, secretKey string, days int) (*domain.LinkStats, error)
}

type ShortenerHandler struct {
	service ShortenerService
}

func NewShortenerHandler(service ShortenerService) *ShortenerHandler {
	return &ShortenerHandler{service: service}
}

// redirectNotFound is the single body served for both missing and
// inactive keys, so the two are indistinguishable to public callers.
var redirectNotFound = gin.H{"message": "short link not found"}

func (h *ShortenerHandler) CreateBatch(c *gin.Context) {
	var req domain.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if errs := validator.Validate(&req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	ownerID := middleware.OwnerID(c)

	result, err := h.service.CreateBatch(c.Request.Context(), ownerID, req.URLs)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("batch create failed", "owner_id", ownerID, "error", err)
		response.InternalServerError(c, "could not create short links")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ShortenerHandler) Redirect(c *gin.Context) {
	key := c.Param("key")
	userAgent := c.Request.UserAgent()

	click := &domain.ClickRequest{
		UserAgent:  userAgent,
		Referer:    c.Request.Referer(),
		IPAddress:  detector.ClientIP(c.Request.RemoteAddr, c.GetHeader("X-Forwarded-For"), c.GetHeader("X-Real-IP")),
		DeviceType: detector.DeviceType(userAgent),
	}

	u, err := h.service.Resolve(c.Request.Context(), key, click)
	if err != nil {
		log := logger.FromContext(c.Request.Context())
		switch {
		case errors.Is(err, domain.ErrInactive):
			log.Info("redirect refused for inactive link", "key", key)
		case errors.Is(err, domain.ErrNotFound):
			log.Info("redirect for unknown key", "key", key)
		default:
			log.Error("resolve failed", "key", key, "error", err)
			response.InternalServerError(c, "internal error")
			return
		}

		c.JSON(http.StatusNotFound, redirectNotFound)
		return
	}

	c.Redirect(http.StatusMovedPermanently, u.TargetURL)
}

func (h *ShortenerHandler) ListMine(c *gin.Context) {
	ownerID := middleware.OwnerID(c)

	urls, err := h.service.ListOwned(c.Request.Context(), ownerID)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("listing owned links failed", "owner_id", ownerID, "error", err)
		response.InternalServerError(c, "could not list short links")
		return
	}

	c.JSON(http.StatusOK, urls)
}

func (h *ShortenerHandler) UpdateActive(c *gin.Context) {
	var req domain.UpdateActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if errs := validator.Validate(&req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	ownerID := middleware.OwnerID(c)
	secretKey := c.Param("secretKey")

	u, err := h.service.SetActive(c.Request.Context(), ownerID, secretKey, *req.Active)
	if err != nil {
		h.writeOwnedError(c, err, "toggling link failed")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *ShortenerHandler) Stats(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		response.BadRequest(c, "days must be between 1 and 365")
		return
	}

	ownerID := middleware.OwnerID(c)
	secretKey := c.Param("secretKey")

	stats, err := h.service.Stats(c.Request.Context(), ownerID, secretKey, days)
	if err != nil {
		h.writeOwnedError(c, err, "fetching link stats failed")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// writeOwnedError maps errors from owner-gated operations. Internal
// errors are logged but never returned verbatim.
func (h *ShortenerHandler) writeOwnedError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, "short link not found")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, "you do not own this link")
	default:
		logger.FromContext(c.Request.Context()).Error(logMsg, "error", err)
		response.InternalServerError(c, "internal error")
	}
}
