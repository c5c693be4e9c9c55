package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// MockSearchStore is a mock implementation of SearchStore for testing.
type MockSearchStore struct {
	mock.Mock
}

var _ contract.SearchStore = &MockSearchStore{} // Compile-time check

// BeginRun implements the SearchStore interface.
func (m *MockSearchStore) BeginRun(startTime time.Time, inputFile string, objective schema.Objective, method schema.Method, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, inputFile, objective, method, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the SearchStore interface.
func (m *MockSearchStore) EndRun(runID int64, endTime time.Time, totalPeriods int, bestPeriod, bestPower float64) error {
	args := m.Called(runID, endTime, totalPeriods, bestPeriod, bestPower)
	return args.Error(0)
}

// RecordPeaks implements the SearchStore interface.
func (m *MockSearchStore) RecordPeaks(runID int64, peaks []schema.Peak) error {
	args := m.Called(runID, peaks)
	return args.Error(0)
}

// ListRuns implements the SearchStore interface.
func (m *MockSearchStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// ListPeaks implements the SearchStore interface.
func (m *MockSearchStore) ListPeaks(runID int64) ([]schema.PeakRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.PeakRecord)
	return records, args.Error(1)
}

// GetStatus implements the SearchStore interface.
func (m *MockSearchStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the SearchStore interface.
func (m *MockSearchStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the SearchStore interface.
func (m *MockSearchStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSearchStore implements the StoreManager interface.
func (m *MockStoreManager) GetSearchStore() contract.SearchStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SearchStore)
	return store
}
