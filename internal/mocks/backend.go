package mocks

import (
	"context"
	"sync"

	"statusplay/internal/backend"
	"statusplay/internal/models"
)

// MockBackend provides a scriptable club API client for tests and local
// development without a running upstream
type MockBackend struct {
	mu sync.Mutex

	Snapshot     *models.Snapshot
	FetchErr     error
	PresenceErr  error
	ProfileErr   error
	AssignedTeam string

	FetchCalls    int
	PresenceCalls []models.Presence
	SavedProfiles []models.Profile
}

// NewMockBackend creates a mock backend serving the given snapshot
func NewMockBackend(snap *models.Snapshot) *MockBackend {
	return &MockBackend{Snapshot: snap}
}

// FetchSnapshot returns the configured snapshot or error
func (m *MockBackend) FetchSnapshot(ctx context.Context, user string) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls++
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Snapshot, nil
}

// SetPresence records the call and returns the configured team assignment
func (m *MockBackend) SetPresence(ctx context.Context, user string, status models.Presence) (*backend.PresenceResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PresenceCalls = append(m.PresenceCalls, status)
	if m.PresenceErr != nil {
		return nil, m.PresenceErr
	}
	return &backend.PresenceResult{Team: m.AssignedTeam}, nil
}

// SaveProfile records the saved profile
func (m *MockBackend) SaveProfile(ctx context.Context, user string, profile models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ProfileErr != nil {
		return m.ProfileErr
	}
	m.SavedProfiles = append(m.SavedProfiles, profile)
	return nil
}

// Fetches returns how many snapshot fetches were made
func (m *MockBackend) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCalls
}

// SetSnapshot swaps the snapshot served to subsequent fetches
func (m *MockBackend) SetSnapshot(snap *models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = snap
}
