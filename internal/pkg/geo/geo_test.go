package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(-9.01, -35.22, -9.01, -35.22), 0.001)

	// Maragogi to Maceió is roughly 90 km
	d := Distance(-9.0122, -35.2225, -9.6658, -35.7353)
	assert.InDelta(t, 90000, d, 15000)
}

func TestNominatimClient_Reverse(t *testing.T) {
	var gotAgent, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		switch r.URL.Query().Get("lat") {
		case "-9.01":
			w.Write([]byte(`{"address":{"town":"Maragogi","state":"Alagoas"}}`))
		case "-9.5":
			w.Write([]byte(`{"address":{"village":"Barra Grande","state":"Alagoas"}}`))
		case "0":
			w.Write([]byte(`{"error":"Unable to geocode"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL+"/", "ponto-test", time.Second)
	ctx := context.Background()

	loc, err := client.Reverse(ctx, -9.01, -35.22)
	require.NoError(t, err)
	assert.Equal(t, location.Location{City: "Maragogi", State: "Alagoas"}, loc)
	assert.Equal(t, "ponto-test", gotAgent)
	assert.Contains(t, gotQuery, "format=json")

	loc, err = client.Reverse(ctx, -9.5, -35.2)
	require.NoError(t, err)
	assert.Equal(t, "Barra Grande", loc.City)

	_, err = client.Reverse(ctx, 0, 0)
	assert.ErrorIs(t, err, location.ErrPlaceNotFound)

	_, err = client.Reverse(ctx, 10, 10)
	assert.Error(t, err)
}
