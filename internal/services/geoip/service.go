// Package geoip resuelve la ubicación aproximada de una IP usando el
// servicio público ipwho.is. Es estrictamente best-effort: cualquier
// fallo devuelve una ubicación unknown, nunca un error.
package geoip

import (
	"context"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pet-registry/internal/domain/pets"
	"pet-registry/internal/platform/httpclient"
	"pet-registry/internal/platform/logger"
)

const (
	lookupTimeout = 5 * time.Second
	cacheTTL      = 24 * time.Hour
)

type ipwhoResponse struct {
	Success   bool    `json:"success"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  struct {
		ID string `json:"id"`
	} `json:"timezone"`
	Connection struct {
		ISP string `json:"isp"`
	} `json:"connection"`
}

type Service struct {
	client *httpclient.Client
	cache  *gocache.Cache
	log    logger.Logger
}

func New(log logger.Logger) *Service {
	return &Service{
		client: httpclient.New(lookupTimeout),
		cache:  gocache.New(cacheTTL, time.Hour),
		log:    log,
	}
}

// NewWithTransport permite inyectar el transporte HTTP, para tests.
func NewWithTransport(log logger.Logger, tr http.RoundTripper) *Service {
	return &Service{
		client: httpclient.NewWithTransport(lookupTimeout, tr),
		cache:  gocache.New(cacheTTL, time.Hour),
		log:    log,
	}
}

// Locate resuelve la IP dada. Las respuestas se cachean 24 horas por IP.
func (s *Service) Locate(ctx context.Context, ip string) pets.Location {
	if ip == "" {
		return pets.UnknownLocation()
	}
	if v, ok := s.cache.Get(ip); ok {
		return v.(pets.Location)
	}

	var resp ipwhoResponse
	err := s.client.GetJSON(ctx, "https://ipwho.is/"+ip, map[string]string{
		"User-Agent": "pet-registry/1.0",
	}, &resp)
	if err != nil || !resp.Success {
		if err != nil {
			s.log.Warn("fallo consultando geolocalización", map[string]any{
				"ip":    ip,
				"error": err.Error(),
			})
		}
		return pets.UnknownLocation()
	}

	loc := pets.Location{
		Country:  orUnknown(resp.Country),
		City:     orUnknown(resp.City),
		Region:   orUnknown(resp.Region),
		Timezone: orUnknown(resp.Timezone.ID),
		ISP:      orUnknown(resp.Connection.ISP),
	}
	// Coordenada cero se reporta como ausente, no como (0, 0).
	if resp.Latitude != 0 {
		lat := resp.Latitude
		loc.Coordinates.Latitude = &lat
	}
	if resp.Longitude != 0 {
		lng := resp.Longitude
		loc.Coordinates.Longitude = &lng
	}

	s.cache.SetDefault(ip, loc)
	return loc
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
