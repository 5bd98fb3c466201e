package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/pkg/utils"
)

// client - HTTP client for the geospatial place-search collaborator. Results
// are keyed by an opaque place reference that the draft stores alongside each
// point of interest.
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewPlacesClient(cfg *config.PlacesConfig, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type placePayload struct {
	Ref     string  `json:"ref"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (p placePayload) toDomain() domain.Place {
	return domain.Place{
		Ref:      p.Ref,
		Name:     p.Name,
		Address:  p.Address,
		Location: domain.LatLng{Lat: p.Lat, Lng: p.Lng},
	}
}

func (c *client) SearchNearby(ctx context.Context, center domain.LatLng, radiusMeters int) ([]domain.Place, error) {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radiusMeters))
	return c.search(ctx, "/places/nearby?"+q.Encode())
}

func (c *client) SearchByText(ctx context.Context, query string, center domain.LatLng, radiusMeters int) ([]domain.Place, error) {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radiusMeters))
	return c.search(ctx, "/places/search?"+q.Encode())
}

func (c *client) PlaceDetails(ctx context.Context, placeRef string) (*domain.Place, error) {
	var payload placePayload
	if err := c.get(ctx, "/places/"+url.PathEscape(placeRef), &payload); err != nil {
		return nil, err
	}
	place := payload.toDomain()
	return &place, nil
}

func (c *client) search(ctx context.Context, path string) ([]domain.Place, error) {
	var payloads []placePayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}

	places := make([]domain.Place, len(payloads))
	for i, p := range payloads {
		places[i] = p.toDomain()
	}
	return places, nil
}

func (c *client) get(ctx context.Context, path string, out interface{}) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("url", fullURL), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Places request failed", zap.String("url", fullURL), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("places API error: status %d", resp.StatusCode)
	}

	c.logger.Debug("Places API call",
		zap.String("path", path),
		zap.Duration("took", time.Since(start)))

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode places response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
