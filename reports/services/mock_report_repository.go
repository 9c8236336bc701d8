// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/interfaces"
)

// MockReportRepository is a mock implementation of ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

// Ensure MockReportRepository implements ReportRepository
var _ reportRepository.ReportRepository = (*MockReportRepository)(nil)

// Create mocks the Create method
func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method
func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Find mocks the Find method
func (m *MockReportRepository) Find(ctx context.Context, filter reportRepository.ReportFilter, limit, offset int) ([]*models.ReportWithReporter, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReportWithReporter), args.Error(1)
}

// Count mocks the Count method
func (m *MockReportRepository) Count(ctx context.Context, filter reportRepository.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// CountPendingByItemType mocks the CountPendingByItemType method
func (m *MockReportRepository) CountPendingByItemType(ctx context.Context) (map[interfaces.ItemType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[interfaces.ItemType]int64), args.Error(1)
}
