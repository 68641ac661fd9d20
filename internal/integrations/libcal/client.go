package libcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// wallClockLayout формат настенного времени в ответе Hours API ("9:00am")
const wallClockLayout = "3:04pm"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с LibCal API: OAuth-токен, операционные часы
// локаций и бронирования пространств
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	tz           *time.Location
	httpClient   *http.Client
	log          Logger

	mu    sync.Mutex
	token string
}

// NewClient создает новый экземпляр клиента LibCal API.
// Все возвращаемые интервалы локализованы в таймзоне анализа tz.
func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration, tz *time.Location, log Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		tz:           tz,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ensureToken возвращает действующий OAuth-токен, при необходимости запрашивая новый.
// Токен запрашивается по grant_type=client_credentials и переиспользуется
// до конца запуска.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create token request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute token request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected token status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidResponse, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	c.token = token.AccessToken
	c.log.Info("LibCal: OAuth token obtained")
	return c.token, nil
}

// authorizedGet выполняет GET-запрос с Bearer-токеном
func (c *Client) authorizedGet(ctx context.Context, rawURL string) (*http.Response, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		// Токен мог протухнуть: сбрасываем, следующий вызов запросит новый
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return nil, ErrUnauthorized
	}

	return resp, nil
}

// HoursForLocation получает операционные часы локации на диапазон дат [from, to].
//
// Даты со status != "open" и даты, отсутствующие в ответе, опускаются:
// для движка анализа это "закрыто" (ноль слотов). Настенное время пар
// открытия/закрытия локализуется в таймзоне анализа; пары с нарушенным
// инвариантом open < close пропускаются с предупреждением.
func (c *Client) HoursForLocation(ctx context.Context, locationID string, from, to time.Time) (domain.HoursByDate, error) {
	params := url.Values{}
	params.Set("from", from.Format(domain.DateFormat))
	params.Set("to", to.Format(domain.DateFormat))
	reqURL := fmt.Sprintf("%s/hours/%s?%s", c.baseURL, url.PathEscape(locationID), params.Encode())

	resp, err := c.authorizedGet(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: hours for location %s: status code %d: %s",
			ErrInvalidResponse, locationID, resp.StatusCode, string(body))
	}

	var locations []locationHours
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return nil, fmt.Errorf("%w: failed to decode hours response for location %s: %v",
			ErrInvalidResponse, locationID, err)
	}

	hoursByDate := domain.HoursByDate{}

	for _, location := range locations {
		for dateStr, day := range location.Dates {
			if day.Status != "open" {
				continue
			}

			ranges, err := c.parseDayHours(dateStr, day.Hours)
			if err != nil {
				return nil, fmt.Errorf("%w: location %s, date %s: %v", ErrInvalidResponse, locationID, dateStr, err)
			}

			if len(ranges) > 0 {
				hoursByDate[dateStr] = ranges
			}
		}
	}

	c.log.Info("LibCal: fetched hours: location=%s open_dates=%d range=%s..%s",
		locationID, len(hoursByDate), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return hoursByDate, nil
}

// parseDayHours превращает пары настенного времени в интервалы одной даты
func (c *Client) parseDayHours(dateStr string, pairs []hoursPair) ([]domain.TimeRange, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, c.tz)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %v", dateStr, err)
	}

	var ranges []domain.TimeRange
	for _, pair := range pairs {
		if pair.From == "" || pair.To == "" {
			continue
		}

		open, err := combineWallClock(date, pair.From, c.tz)
		if err != nil {
			return nil, err
		}
		closeAt, err := combineWallClock(date, pair.To, c.tz)
		if err != nil {
			return nil, err
		}

		r, err := domain.NewTimeRange(open, closeAt)
		if err != nil {
			// Вырожденная пара (например, "12:00am"–"12:00am"): слотов из неё
			// всё равно не выйдет, пропускаем
			c.log.Warn("LibCal: skipping degenerate hours pair: date=%s from=%s to=%s", dateStr, pair.From, pair.To)
			continue
		}

		ranges = append(ranges, r)
	}

	return ranges, nil
}

// combineWallClock собирает момент времени из даты и настенного времени "9:00am"
func combineWallClock(date time.Time, wallClock string, tz *time.Location) (time.Time, error) {
	t, err := time.Parse(wallClockLayout, strings.ToLower(strings.TrimSpace(wallClock)))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad wall-clock time %q: %v", wallClock, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, tz), nil
}

// BookingsForSpace получает бронирования пространства на days дней от from.
//
// Возвращает нормализованные интервалы в таймзоне анализа и количество
// отброшенных записей. Некорректная запись (пустые или нечитаемые метки
// времени) пропускается и не прерывает обработку остальных.
func (c *Client) BookingsForSpace(ctx context.Context, spaceID string, from time.Time, days int) ([]domain.TimeRange, int, error) {
	params := url.Values{}
	params.Set("eid", spaceID)
	params.Set("date", from.Format(domain.DateFormat))
	params.Set("days", strconv.Itoa(days))
	params.Set("limit", "150")
	params.Set("include_tentative", "1")
	params.Set("include_cancel", "0")
	reqURL := fmt.Sprintf("%s/space/bookings?%s", c.baseURL, params.Encode())

	resp, err := c.authorizedGet(ctx, reqURL)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, fmt.Errorf("%w: bookings for space %s: status code %d: %s",
			ErrInvalidResponse, spaceID, resp.StatusCode, string(body))
	}

	var rawBookings []rawBooking
	if err := json.NewDecoder(resp.Body).Decode(&rawBookings); err != nil {
		return nil, 0, fmt.Errorf("%w: failed to decode bookings response for space %s: %v",
			ErrInvalidResponse, spaceID, err)
	}

	booked := make([]domain.TimeRange, 0, len(rawBookings))
	dropped := 0

	for _, raw := range rawBookings {
		if raw.FromDate == "" || raw.ToDate == "" {
			dropped++
			continue
		}

		r, err := domain.NewBookedRange(raw.FromDate, raw.ToDate, c.tz)
		if err != nil {
			c.log.Warn("LibCal: skipping malformed booking record: space=%s book_id=%s error=%v",
				spaceID, raw.BookID, err)
			dropped++
			continue
		}

		booked = append(booked, r)
	}

	c.log.Info("LibCal: fetched bookings: space=%s total=%d kept=%d dropped=%d",
		spaceID, len(rawBookings), len(booked), dropped)

	return booked, dropped, nil
}
