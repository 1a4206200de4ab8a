// Package qr genera códigos QR apuntando a la ficha pública de una
// mascota, como data URL PNG embebible en la respuesta JSON.
package qr

import (
	"encoding/base64"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	imageSize = 300
	cacheTTL  = 7 * 24 * time.Hour
)

type Service struct {
	baseURL string
	cache   *gocache.Cache
}

func New(baseURL string) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   gocache.New(cacheTTL, time.Hour),
	}
}

// Generate produce el QR para el identificador público dado. El
// resultado se cachea por uniqueID+baseURL: el mismo código siempre
// apunta al mismo link.
func (s *Service) Generate(uniqueID string) (string, error) {
	key := uniqueID + "_" + s.baseURL
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	url := s.baseURL + "/" + uniqueID
	png, err := qrcode.Encode(url, qrcode.High, imageSize)
	if err != nil {
		return "", err
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	s.cache.SetDefault(key, dataURL)
	return dataURL, nil
}
