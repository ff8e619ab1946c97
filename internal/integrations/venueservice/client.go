package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с VenueService - источником настроек площадки
// (часовой пояс, часы работы, минимальное время до брони)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVenue получает площадку с её настройками
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

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
		return nil, ErrVenueNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var venue Venue
	if err := json.NewDecoder(resp.Body).Decode(&venue); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &venue, nil
}

// ScheduleFor возвращает расписание работы площадки на указанный день недели
func (v *Venue) ScheduleFor(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return v.WorkingHours.Monday
	case time.Tuesday:
		return v.WorkingHours.Tuesday
	case time.Wednesday:
		return v.WorkingHours.Wednesday
	case time.Thursday:
		return v.WorkingHours.Thursday
	case time.Friday:
		return v.WorkingHours.Friday
	case time.Saturday:
		return v.WorkingHours.Saturday
	case time.Sunday:
		return v.WorkingHours.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Location возвращает часовой пояс площадки.
// Проверки "дата в прошлом" и фильтр минимального уведомления обязаны
// считаться в локальном времени площадки, а не процесса.
func (v *Venue) Location() (*time.Location, error) {
	if v.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue timezone %q: %v", ErrInvalidResponse, v.Timezone, err)
	}
	return loc, nil
}
