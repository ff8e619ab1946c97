package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// Длительности активностей меняются редко - кешируем.
	// Сама доступность столов никогда не кешируется.
	cacheTTL             = 10 * time.Minute
	cacheCleanupInterval = 30 * time.Minute
)

// Client клиент для работы с CatalogService - источником эвристик
// длительности по связанной активности
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: gocache.New(cacheTTL, cacheCleanupInterval),
		log:   log,
	}
}

// GetActivity получает активность по ID
func (c *Client) GetActivity(ctx context.Context, activityID int64) (*Activity, error) {
	cacheKey := fmt.Sprintf("activity:%d", activityID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*Activity), nil
	}

	url := fmt.Sprintf("%s/internal/activities/%d", c.baseURL, activityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrActivityNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var activity Activity
	if err := json.NewDecoder(resp.Body).Decode(&activity); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cache.Set(cacheKey, &activity, gocache.DefaultExpiration)

	return &activity, nil
}

// GetActivityWithGracefulDegradation получает активность с graceful
// degradation: при недоступности CatalogService возвращает ErrServiceDegraded,
// и вызывающий код использует длительность по умолчанию
func (c *Client) GetActivityWithGracefulDegradation(ctx context.Context, activityID int64) (*Activity, error) {
	activity, err := c.GetActivity(ctx, activityID)
	if err != nil {
		// Отсутствие активности - бизнес-ошибка, пробрасываем как есть
		if err == ErrActivityNotFound {
			c.log.Info("Activity id=%d not found in catalog", activityID)
			return nil, err
		}

		// Всё остальное (недоступность, timeout, ошибки парсинга) -
		// деградируем до длительности по умолчанию
		c.log.Error("CatalogService unavailable, applying graceful degradation for activity_id=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: activity_id=%d, error=%v", ErrServiceDegraded, activityID, err)
	}

	return activity, nil
}
