package places

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewPlacesClient(&config.PlacesConfig{
		BaseURL:        server.URL,
		APIKey:         "test_key",
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop()).(*client)
}

func TestClient_SearchByText(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/search", r.URL.Path)
		assert.Equal(t, "old town", r.URL.Query().Get("query"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))
		assert.Equal(t, "test_key", r.Header.Get("X-Api-Key"))

		json.NewEncoder(w).Encode([]placePayload{
			{Ref: "pl-1", Name: "Old Town Square", Address: "Prague 1", Lat: 50.087, Lng: 14.42},
			{Ref: "pl-2", Name: "Old Town Hall", Address: "Prague 1", Lat: 50.086, Lng: 14.419},
		})
	})

	places, err := c.SearchByText(context.Background(), "old town", domain.LatLng{Lat: 50.08, Lng: 14.42}, 5000)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "pl-1", places[0].Ref)
	assert.Equal(t, 50.087, places[0].Location.Lat)
}

func TestClient_SearchNearby_RejectsBadCoordinates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the collaborator")
	})

	_, err := c.SearchNearby(context.Background(), domain.LatLng{Lat: 95, Lng: 14.42}, 5000)
	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrInvalidCoordinates.Code, appErr.Code)

	_, err = c.SearchByText(context.Background(), "old town", domain.LatLng{Lat: 50, Lng: 200}, 5000)
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrInvalidCoordinates.Code, appErr.Code)
}

func TestClient_PlaceDetails(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/pl-1", r.URL.Path)
		json.NewEncoder(w).Encode(placePayload{Ref: "pl-1", Name: "Old Town Square", Lat: 50.087, Lng: 14.42})
	})

	place, err := c.PlaceDetails(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Equal(t, "Old Town Square", place.Name)
}
