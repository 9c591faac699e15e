package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/geo"
)

// DefaultNearbyRadius is how close, in meters, new coordinates must be to
// the saved ones for the saved place to be reused without a lookup.
const DefaultNearbyRadius = 500.0

type LocationServiceImpl struct {
	location.Repository
	geocoder     location.Geocoder
	nearbyRadius float64

	// mu guards generation and orders the persist step of Resolve calls.
	mu         sync.Mutex
	generation uint64
}

// Resolve implements location.Service. Only the newest call may persist
// its result; a lookup that finishes after a newer one started is
// returned as stale and dropped.
func (s *LocationServiceImpl) Resolve(ctx context.Context, req location.ResolveRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	gen := s.begin()

	saved, hasSaved := s.saved(ctx)
	if hasSaved && saved.ResolvedAt != nil &&
		geo.Distance(saved.ResolvedAt.Latitude, saved.ResolvedAt.Longitude, req.Latitude, req.Longitude) <= s.nearbyRadius {
		return response(&saved.Location, location.SourceNearby), nil
	}

	place, err := s.geocoder.Reverse(ctx, req.Latitude, req.Longitude)
	if err != nil {
		slog.Warn("Reverse geocoding failed", "error", err)
		if hasSaved {
			return response(&saved.Location, location.SourceLastKnown), nil
		}
		return response(nil, location.SourceUnavailable), nil
	}

	persisted, err := s.persistIfCurrent(ctx, gen, location.Saved{
		Location:   place,
		ResolvedAt: &location.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		return location.LocationResponse{}, err
	}

	resp := response(&place, location.SourceGeocoder)
	resp.Stale = !persisted
	return resp, nil
}

func (s *LocationServiceImpl) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *LocationServiceImpl) persistIfCurrent(ctx context.Context, gen uint64, saved location.Saved) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.Info("Dropping stale location result", "city", saved.City)
		return false, nil
	}
	if err := s.Repository.Save(ctx, saved); err != nil {
		return false, fmt.Errorf("failed to save location: %w", err)
	}
	return true, nil
}

func (s *LocationServiceImpl) saved(ctx context.Context) (location.Saved, bool) {
	saved, err := s.Repository.Get(ctx)
	if err != nil {
		if !errors.Is(err, location.ErrLocationNotFound) {
			slog.Warn("Failed to read saved location", "error", err)
		}
		return location.Saved{}, false
	}
	return saved, true
}

// Current implements location.Service.
func (s *LocationServiceImpl) Current(ctx context.Context) (location.LocationResponse, error) {
	saved, ok := s.saved(ctx)
	if !ok {
		return response(nil, location.SourceUnavailable), nil
	}
	return response(&saved.Location, location.SourceLastKnown), nil
}

// Snapshot implements location.Service.
func (s *LocationServiceImpl) Snapshot(ctx context.Context) *location.Location {
	saved, ok := s.saved(ctx)
	if !ok {
		return nil
	}
	loc := saved.Location
	return &loc
}

func response(loc *location.Location, source string) location.LocationResponse {
	return location.LocationResponse{
		Location: loc,
		Label:    loc.Label(),
		Source:   source,
	}
}

func NewLocationService(locationRepo location.Repository, geocoder location.Geocoder, nearbyRadius float64) location.Service {
	if nearbyRadius < 0 {
		nearbyRadius = 0
	}
	return &LocationServiceImpl{
		Repository:   locationRepo,
		geocoder:     geocoder,
		nearbyRadius: nearbyRadius,
	}
}
