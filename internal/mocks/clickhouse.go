package mocks

import (
	"context"
	"fmt"
	"sync"

	"statusplay/internal/logger"
	"statusplay/internal/models"
)

// MockOccupancyClient provides an in-memory court occupancy tracker for
// local development, standing in for the ClickHouse client
type MockOccupancyClient struct {
	mu      sync.Mutex
	samples []models.CourtStatus
}

// NewMockOccupancyClient creates a mock occupancy tracker
func NewMockOccupancyClient() *MockOccupancyClient {
	logger.Info("Using MOCK occupancy tracker (in-memory) for local development")
	return &MockOccupancyClient{}
}

// RecordOccupancy stores one occupancy sample in memory
func (m *MockOccupancyClient) RecordOccupancy(ctx context.Context, cs models.CourtStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, cs)
	return nil
}

// PeakNote returns a fixed evening peak, which is what the real data
// shows for club courts anyway
func (m *MockOccupancyClient) PeakNote(ctx context.Context) (string, error) {
	return fmt.Sprintf("Courts are busiest around %02d:00. Book early.", 19), nil
}

// Samples returns the recorded occupancy samples
func (m *MockOccupancyClient) Samples() []models.CourtStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CourtStatus, len(m.samples))
	copy(out, m.samples)
	return out
}

// Close is a no-op for mock
func (m *MockOccupancyClient) Close() error {
	return nil
}
