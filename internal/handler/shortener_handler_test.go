package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linkcut/internal/domain"
	"linkcut/internal/middleware"
	"linkcut/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(service *mocks.MockShortenerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewShortenerHandler(service)

	authed := router.Group("/api/v1/shortener")
	authed.Use(func(c *gin.Context) {
		c.Set(middleware.OwnerIDKey, "user-1")
	})
	authed.POST("", handler.CreateBatch)
	authed.GET("/mine", handler.ListMine)
	authed.PATCH("/:secretKey/active", handler.UpdateActive)
	authed.GET("/:secretKey/stats", handler.Stats)

	router.GET("/:key", handler.Redirect)
	return router
}

func TestCreateBatch_Created(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	batch := &domain.BatchResult{
		Created: []domain.ShortURL{
			{
				ID:        1,
				Key:       "abc1234",
				SecretKey: "tokentokentoken1",
				TargetURL: "https://example.com",
				IsActive:  true,
				OwnerID:   "user-1",
				CreatedAt: time.Now(),
			},
		},
		Invalid: []string{"not-a-url"},
	}

	mockService.On("CreateBatch", mock.Anything, "user-1", []string{"https://example.com", "not-a-url"}).
		Return(batch, nil).Once()

	reqBody := `{"urls": ["https://example.com", "not-a-url"]}`
	req := httptest.NewRequest("POST", "/api/v1/shortener", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Created []map[string]interface{} `json:"created"`
		Invalid []string                 `json:"invalid"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Created, 1)
	assert.Equal(t, "abc1234", response.Created[0]["key"])
	assert.Equal(t, "tokentokentoken1", response.Created[0]["secret_key"])
	assert.Equal(t, "https://example.com", response.Created[0]["redir_target_url"])
	assert.Equal(t, true, response.Created[0]["is_active"])
	assert.Contains(t, response.Created[0], "time_metadata")
	assert.NotContains(t, response.Created[0], "id")
	assert.Equal(t, []string{"not-a-url"}, response.Invalid)

	mockService.AssertExpectations(t)
}

func TestCreateBatch_InvalidJSON(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest("POST", "/api/v1/shortener", strings.NewReader(`{invalid json}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBatch_EmptyList(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest("POST", "/api/v1/shortener", strings.NewReader(`{"urls": []}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBatch_ServiceError(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("CreateBatch", mock.Anything, "user-1", []string{"https://example.com"}).
		Return(nil, errors.New("database unavailable")).Once()

	req := httptest.NewRequest("POST", "/api/v1/shortener", strings.NewReader(`{"urls": ["https://example.com"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database unavailable")
}

func TestRedirect_Found(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	resolved := &domain.ShortURL{
		ID:        1,
		Key:       "abc1234",
		TargetURL: "https://example.com/landing",
		IsActive:  true,
	}

	mockService.On("Resolve", mock.Anything, "abc1234", mock.MatchedBy(func(click *domain.ClickRequest) bool {
		return click != nil && click.UserAgent == "curl/8.5.0"
	})).Return(resolved, nil).Once()

	req := httptest.NewRequest("GET", "/abc1234", nil)
	req.Header.Set("User-Agent", "curl/8.5.0")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://example.com/landing", w.Header().Get("Location"))
	mockService.AssertExpectations(t)
}

func TestRedirect_InactiveAndMissingAreIndistinguishable(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("Resolve", mock.Anything, "paused1", mock.Anything).Return(nil, domain.ErrInactive).Once()
	mockService.On("Resolve", mock.Anything, "missing", mock.Anything).Return(nil, domain.ErrNotFound).Once()

	inactiveRec := httptest.NewRecorder()
	router.ServeHTTP(inactiveRec, httptest.NewRequest("GET", "/paused1", nil))

	missingRec := httptest.NewRecorder()
	router.ServeHTTP(missingRec, httptest.NewRequest("GET", "/missing", nil))

	assert.Equal(t, http.StatusNotFound, inactiveRec.Code)
	assert.Equal(t, http.StatusNotFound, missingRec.Code)
	assert.Equal(t, inactiveRec.Body.String(), missingRec.Body.String())
	assert.Empty(t, inactiveRec.Header().Get("Location"))
	mockService.AssertExpectations(t)
}

func TestRedirect_ServiceError(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("Resolve", mock.Anything, "abc1234", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/abc1234", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestListMine_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	owned := []domain.ShortURL{
		{ID: 1, Key: "abc1234", TargetURL: "https://a.example", OwnerID: "user-1", IsActive: true},
		{ID: 2, Key: "def5678", TargetURL: "https://b.example", OwnerID: "user-1", IsActive: false},
	}

	mockService.On("ListOwned", mock.Anything, "user-1").Return(owned, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/shortener/mine", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "abc1234", response[0]["key"])
	assert.Equal(t, false, response[1]["is_active"])
	mockService.AssertExpectations(t)
}

func TestListMine_EmptyIsArray(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("ListOwned", mock.Anything, "user-1").Return([]domain.ShortURL{}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/shortener/mine", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestUpdateActive_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	updated := &domain.ShortURL{
		ID:        1,
		Key:       "abc1234",
		SecretKey: "secret-token",
		TargetURL: "https://example.com",
		IsActive:  false,
		OwnerID:   "user-1",
	}

	mockService.On("SetActive", mock.Anything, "user-1", "secret-token", false).Return(updated, nil).Once()

	req := httptest.NewRequest("PATCH", "/api/v1/shortener/secret-token/active", strings.NewReader(`{"active": false}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, false, response["is_active"])
	mockService.AssertExpectations(t)
}

func TestUpdateActive_MissingFlag(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest("PATCH", "/api/v1/shortener/secret-token/active", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateActive_Forbidden(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("SetActive", mock.Anything, "user-1", "secret-token", true).
		Return(nil, domain.ErrForbidden).Once()

	req := httptest.NewRequest("PATCH", "/api/v1/shortener/secret-token/active", strings.NewReader(`{"active": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateActive_NotFound(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	mockService.On("SetActive", mock.Anything, "user-1", "unknown", true).
		Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest("PATCH", "/api/v1/shortener/unknown/active", strings.NewReader(`{"active": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats_DefaultsToThirtyDays(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	stats := &domain.LinkStats{Key: "abc1234", TotalClicks: 12}

	mockService.On("Stats", mock.Anything, "user-1", "secret-token", 30).Return(stats, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/shortener/secret-token/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, float64(12), response["total_clicks"])
	mockService.AssertExpectations(t)
}

func TestStats_RejectsOutOfRangeDays(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupTestRouter(mockService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/shortener/secret-token/stats?days=400", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
