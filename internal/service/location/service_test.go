package location

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/blob"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	mu    sync.Mutex
	calls int
	place location.Location
	err   error
	// block, when set, holds Reverse until it is closed.
	block chan struct{}
}

func (g *stubGeocoder) Reverse(ctx context.Context, lat, lon float64) (location.Location, error) {
	g.mu.Lock()
	g.calls++
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return g.place, g.err
}

func TestResolve_PersistsAndReusesNearby(t *testing.T) {
	ctx := context.Background()
	geocoder := &stubGeocoder{place: location.Location{City: "Maragogi", State: "Alagoas"}}
	svc := NewLocationService(blob.NewLocationRepository(memory.NewStateRepository()), geocoder, DefaultNearbyRadius)

	resp, err := svc.Resolve(ctx, location.ResolveRequest{Latitude: -9.0122, Longitude: -35.2225})
	require.NoError(t, err)
	assert.Equal(t, location.SourceGeocoder, resp.Source)
	assert.Equal(t, "Maragogi - Alagoas", resp.Label)
	assert.False(t, resp.Stale)

	resp, err = svc.Resolve(ctx, location.ResolveRequest{Latitude: -9.0125, Longitude: -35.2227})
	require.NoError(t, err)
	assert.Equal(t, location.SourceNearby, resp.Source)
	assert.Equal(t, 1, geocoder.calls)

	snap := svc.Snapshot(ctx)
	require.NotNil(t, snap)
	assert.Equal(t, "Maragogi", snap.City)
}

func TestResolve_FallsBackToLastKnown(t *testing.T) {
	ctx := context.Background()
	repo := blob.NewLocationRepository(memory.NewStateRepository())
	require.NoError(t, repo.Save(ctx, location.Saved{Location: location.Location{City: "Maceió", State: "Alagoas"}}))

	svc := NewLocationService(repo, &stubGeocoder{err: errors.New("offline")}, DefaultNearbyRadius)

	resp, err := svc.Resolve(ctx, location.ResolveRequest{Latitude: -9.0, Longitude: -35.0})
	require.NoError(t, err)
	assert.Equal(t, location.SourceLastKnown, resp.Source)
	assert.Equal(t, "Maceió - Alagoas", resp.Label)
}

func TestResolve_Unavailable(t *testing.T) {
	ctx := context.Background()
	svc := NewLocationService(blob.NewLocationRepository(memory.NewStateRepository()), &stubGeocoder{err: location.ErrPlaceNotFound}, DefaultNearbyRadius)

	resp, err := svc.Resolve(ctx, location.ResolveRequest{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Equal(t, location.SourceUnavailable, resp.Source)
	assert.Equal(t, "Localização indisponível", resp.Label)
	assert.Nil(t, svc.Snapshot(ctx))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, location.UnavailableLabel, current.Label)
}

func TestResolve_Validation(t *testing.T) {
	svc := NewLocationService(blob.NewLocationRepository(memory.NewStateRepository()), &stubGeocoder{}, DefaultNearbyRadius)
	_, err := svc.Resolve(context.Background(), location.ResolveRequest{Latitude: 91, Longitude: 0})
	assert.Error(t, err)
}

func TestResolve_StaleResultIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	repo := blob.NewLocationRepository(memory.NewStateRepository())

	slow := &stubGeocoder{place: location.Location{City: "Old", State: "AL"}, block: make(chan struct{})}
	svc := NewLocationService(repo, slow, 0).(*LocationServiceImpl)

	done := make(chan location.LocationResponse)
	go func() {
		resp, _ := svc.Resolve(ctx, location.ResolveRequest{Latitude: -9, Longitude: -35})
		done <- resp
	}()

	// wait until the slow lookup is in flight
	require.Eventually(t, func() bool {
		slow.mu.Lock()
		defer slow.mu.Unlock()
		return slow.calls == 1
	}, time.Second, time.Millisecond)

	svc.geocoder = &stubGeocoder{place: location.Location{City: "New", State: "PE"}}
	resp, err := svc.Resolve(ctx, location.ResolveRequest{Latitude: -8, Longitude: -35})
	require.NoError(t, err)
	assert.False(t, resp.Stale)

	close(slow.block)
	stale := <-done
	assert.True(t, stale.Stale)

	saved, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", saved.City)
}
