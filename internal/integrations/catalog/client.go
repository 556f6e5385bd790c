package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client клиент каталога салона: базовые записи услуг и салонные переопределения
//
// Ответы каталога возвращаются сырыми (map до нормализации): канонизацию
// выполняет слой нормализации на стороне вызывающего. Каждый успешный ответ
// кэшируется в redis и служит альтернативным источником при недоступности
// каталога (один повтор через кэш, затем деградация)
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
// cache может быть nil: тогда повтор через кэш не выполняется
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func serviceCacheKey(salonID, serviceID string) string {
	return fmt.Sprintf("catalog:%s:service:%s", salonID, serviceID)
}

func overrideCacheKey(salonID, serviceID string) string {
	return fmt.Sprintf("catalog:%s:override:%s", salonID, serviceID)
}

// GetService получает сырую запись услуги из каталога
func (c *Client) GetService(ctx context.Context, salonID, serviceID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/internal/salons/%s/services/%s", c.baseURL, salonID, serviceID)
	return c.fetch(ctx, url, serviceCacheKey(salonID, serviceID), ErrServiceNotFound)
}

// GetSalonOverride получает сырое салонное переопределение услуги
// Отсутствие переопределения считается штатной ситуацией (ErrOverrideNotFound)
func (c *Client) GetSalonOverride(ctx context.Context, salonID, serviceID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/internal/salons/%s/services/%s/override", c.baseURL, salonID, serviceID)
	return c.fetch(ctx, url, overrideCacheKey(salonID, serviceID), ErrOverrideNotFound)
}

func (c *Client) fetch(ctx context.Context, url, cacheKey string, notFound error) (map[string]interface{}, error) {
	payload, err := c.doRequest(ctx, url, notFound)
	if err != nil {
		// Бизнес-ошибку (404) пробрасываем как есть: кэш её не спасает
		if errors.Is(err, notFound) {
			return nil, err
		}

		// Каталог недоступен: отдаем последний успешно полученный payload из кэша
		cached, cacheErr := c.readCache(ctx, cacheKey)
		if cacheErr == nil {
			c.log.Warn("Catalog unavailable, served from cache: key=%s, error=%v", cacheKey, err)
			return cached, nil
		}

		c.log.Error("Catalog unavailable and cache missed, applying graceful degradation: key=%s, error=%v", cacheKey, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.writeCache(ctx, cacheKey, payload)
	return payload, nil
}

func (c *Client) doRequest(ctx context.Context, url string, notFound error) (map[string]interface{}, error) {
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
		return nil, notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return payload, nil
}

func (c *Client) readCache(ctx context.Context, key string) (map[string]interface{}, error) {
	if c.cache == nil {
		return nil, redis.Nil
	}

	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) writeCache(ctx context.Context, key string, payload map[string]interface{}) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Failed to cache catalog payload: key=%s, error=%v", key, err)
	}
}
