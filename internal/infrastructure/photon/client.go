package photon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/config"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	apperrors "github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	biasScale  float64
	limit      int
	logger     *zap.Logger
}

// featureCollection - ответ Photon API (GeoJSON)
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name        string    `json:"name"`
			OSMKey      string    `json:"osm_key"`
			OSMValue    string    `json:"osm_value"`
			City        string    `json:"city"`
			Country     string    `json:"country"`
			Street      string    `json:"street"`
			HouseNumber string    `json:"housenumber"`
			District    string    `json:"district"`
			County      string    `json:"county"`
			Extent      []float64 `json:"extent"`
		} `json:"properties"`
	} `json:"features"`
}

// NewPhotonClient создает новый клиент для Photon API
func NewPhotonClient(cfg *config.PhotonConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		biasScale: cfg.LocationBiasScale,
		limit:     cfg.ResultLimit,
		logger:    logger,
	}
}

// Search ищет именованные места категории рядом с точкой
func (c *client) Search(ctx context.Context, q repository.SearchQuery) ([]*domain.FacilityCandidate, error) {
	if q.Term == "" {
		return nil, fmt.Errorf("search term cannot be empty")
	}

	params := url.Values{}
	params.Set("q", q.Term)
	params.Set("lat", fmt.Sprintf("%f", q.Lat))
	params.Set("lon", fmt.Sprintf("%f", q.Lon))

	limit := q.Limit
	if limit == 0 {
		limit = c.limit
	}
	params.Set("limit", fmt.Sprintf("%d", limit))

	biasScale := q.BiasScale
	if biasScale == 0 {
		biasScale = c.biasScale
	}
	params.Set("location_bias_scale", fmt.Sprintf("%g", biasScale))

	if q.OSMTag != "" {
		params.Set("osm_tag", q.OSMTag)
	}
	if q.Zoom != 0 {
		params.Set("zoom", fmt.Sprintf("%d", q.Zoom))
	}

	fc, err := c.get(ctx, fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	return c.toCandidates(fc), nil
}

// SearchBBox ищет именованные места внутри bounding box
func (c *client) SearchBBox(ctx context.Context, term string, bbox domain.BoundingBox, limit int) ([]*domain.FacilityCandidate, error) {
	if term == "" {
		return nil, fmt.Errorf("search term cannot be empty")
	}
	if limit == 0 {
		limit = c.limit
	}

	params := url.Values{}
	params.Set("q", term)
	// Photon принимает bbox как minLon,minLat,maxLon,maxLat
	params.Set("bbox", fmt.Sprintf("%f,%f,%f,%f", bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat))
	params.Set("limit", fmt.Sprintf("%d", limit))

	fc, err := c.get(ctx, fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	return c.toCandidates(fc), nil
}

// Reverse возвращает место, к которому административно относится точка
func (c *client) Reverse(ctx context.Context, lat, lon float64) (*domain.ReversePlace, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("limit", "1")

	fc, err := c.get(ctx, fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	if len(fc.Features) == 0 {
		return nil, nil
	}

	props := fc.Features[0].Properties
	return &domain.ReversePlace{
		Name:        props.Name,
		City:        props.City,
		Country:     props.Country,
		Street:      props.Street,
		HouseNumber: props.HouseNumber,
		District:    props.District,
		County:      props.County,
	}, nil
}

// get выполняет запрос и декодирует GeoJSON ответ
func (c *client) get(ctx context.Context, requestURL string) (*featureCollection, error) {
	c.logger.Debug("Calling Photon API", zap.String("url", requestURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, apperrors.ErrGeocoderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Photon API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrGeocoderUnavailable
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, apperrors.ErrGeocoderUnavailable
	}

	return &fc, nil
}

// toCandidates конвертирует GeoJSON фичи в кандидатов фасилити
func (c *client) toCandidates(fc *featureCollection) []*domain.FacilityCandidate {
	candidates := make([]*domain.FacilityCandidate, 0, len(fc.Features))

	for _, f := range fc.Features {
		if len(f.Geometry.Coordinates) < 2 {
			c.logger.Warn("Skipping feature without coordinates",
				zap.String("name", f.Properties.Name))
			continue
		}

		candidate := &domain.FacilityCandidate{
			Name:     f.Properties.Name,
			Lon:      f.Geometry.Coordinates[0],
			Lat:      f.Geometry.Coordinates[1],
			OSMKey:   f.Properties.OSMKey,
			OSMValue: f.Properties.OSMValue,
		}

		// Photon отдаёт extent как [west, north, east, south]
		if len(f.Properties.Extent) == 4 {
			candidate.Extent = &domain.BoundingBox{
				MinLon: f.Properties.Extent[0],
				MaxLat: f.Properties.Extent[1],
				MaxLon: f.Properties.Extent[2],
				MinLat: f.Properties.Extent[3],
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates
}
