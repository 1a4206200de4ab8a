package geoip

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-registry/internal/platform/logger"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestLocateSuccess(t *testing.T) {
	var gotURL string
	svc := NewWithTransport(logger.Nop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return jsonResponse(`{
			"success": true,
			"country": "Peru",
			"city": "Lima",
			"region": "Lima",
			"latitude": -12.0464,
			"longitude": -77.0428,
			"timezone": {"id": "America/Lima"},
			"connection": {"isp": "Telefonica"}
		}`), nil
	}))

	loc := svc.Locate(context.Background(), "190.12.1.1")
	assert.Equal(t, "https://ipwho.is/190.12.1.1", gotURL)
	assert.Equal(t, "Peru", loc.Country)
	assert.Equal(t, "Lima", loc.City)
	assert.Equal(t, "America/Lima", loc.Timezone)
	assert.Equal(t, "Telefonica", loc.ISP)
	require.NotNil(t, loc.Coordinates.Latitude)
	require.NotNil(t, loc.Coordinates.Longitude)
	assert.InDelta(t, -12.0464, *loc.Coordinates.Latitude, 0.0001)
}

func TestLocateUnsuccessfulLookup(t *testing.T) {
	svc := NewWithTransport(logger.Nop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(`{"success": false}`), nil
	}))

	loc := svc.Locate(context.Background(), "127.0.0.1")
	assert.Equal(t, "unknown", loc.Country)
	assert.Nil(t, loc.Coordinates.Latitude)
}

func TestLocateEmptyIP(t *testing.T) {
	svc := NewWithTransport(logger.Nop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no debería haber request para IP vacía")
		return nil, nil
	}))

	loc := svc.Locate(context.Background(), "")
	assert.Equal(t, "unknown", loc.Country)
}

func TestLocateCachesPerIP(t *testing.T) {
	calls := 0
	svc := NewWithTransport(logger.Nop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(`{"success": true, "country": "Chile"}`), nil
	}))

	first := svc.Locate(context.Background(), "200.1.1.1")
	second := svc.Locate(context.Background(), "200.1.1.1")
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestLocateZeroCoordinatesOmitted(t *testing.T) {
	svc := NewWithTransport(logger.Nop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(`{"success": true, "country": "X", "latitude": 0, "longitude": 0}`), nil
	}))

	loc := svc.Locate(context.Background(), "10.0.0.1")
	assert.Nil(t, loc.Coordinates.Latitude)
	assert.Nil(t, loc.Coordinates.Longitude)
}
