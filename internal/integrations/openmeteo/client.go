package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

const hourLayout = "2006-01-02T15:04"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет обращений к провайдеру
type Metrics interface {
	ObserveWeatherCall(result string)
}

// Client клиент почасового прогноза Open-Meteo
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента Open-Meteo. metrics может быть nil.
func NewClient(baseURL string, timeout time.Duration, metrics Metrics, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// Forecast возвращает показатели погоды в точке на час domain.ForecastHour(at)
func (c *Client) Forecast(ctx context.Context, lat, lng float64, at time.Time) (*domain.WeatherReading, error) {
	reading, err := c.forecast(ctx, lat, lng, domain.ForecastHour(at))
	if c.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		c.metrics.ObserveWeatherCall(result)
	}
	if err != nil {
		c.log.Warn("Open-Meteo forecast failed for lat=%.3f lng=%.3f at=%s: %v", lat, lng, at.Format(time.RFC3339), err)
		return nil, err
	}
	return reading, nil
}

func (c *Client) forecast(ctx context.Context, lat, lng float64, at time.Time) (*domain.WeatherReading, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base url: %v", ErrInternal, err)
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%.5f", lat))
	q.Set("longitude", fmt.Sprintf("%.5f", lng))
	q.Set("hourly", "temperature_2m,wind_speed_10m,precipitation,cloud_cover")
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "UTC")
	q.Set("start_date", at.Format(domain.DateFormat))
	q.Set("end_date", at.Format(domain.DateFormat))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		var apiErr errorResponse
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, fmt.Errorf("%w: status code %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Reason)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nearestHour(&payload, at)
}

// nearestHour выбирает час прогноза, ближайший к at
func nearestHour(payload *forecastResponse, at time.Time) (*domain.WeatherReading, error) {
	h := payload.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty hourly forecast", ErrInvalidResponse)
	}
	if len(h.Temperature2m) < n || len(h.WindSpeed10m) < n || len(h.Precipitation) < n || len(h.CloudCover) < n {
		return nil, fmt.Errorf("%w: hourly series have different lengths", ErrInvalidResponse)
	}

	idx := -1
	var hour time.Time
	minDiff := math.MaxFloat64
	for i, raw := range h.Time {
		parsed, err := time.ParseInLocation(hourLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: bad hour %q: %v", ErrInvalidResponse, raw, err)
		}
		diff := math.Abs(parsed.Sub(at).Hours())
		if diff < minDiff {
			minDiff = diff
			idx = i
			hour = parsed
		}
	}

	return &domain.WeatherReading{
		Temperature:   h.Temperature2m[idx],
		WindSpeed:     h.WindSpeed10m[idx],
		Precipitation: h.Precipitation[idx],
		CloudCover:    h.CloudCover[idx],
		At:            hour,
	}, nil
}
