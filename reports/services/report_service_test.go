// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strings"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	reportErrors "github.com/forumkit/forum-api/reports/errors"
	"github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/interfaces"
)

func TestReportService_SubmitReport(t *testing.T) {
	ctx := context.Background()
	reporterID := uuid.Must(uuid.NewV4())
	commentRef := interfaces.ItemRef{Type: interfaces.ItemTypeComment, ID: uuid.Must(uuid.NewV4())}

	t.Run("Creates pending report with trimmed reason", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		mockContent.On("Exists", ctx, commentRef).Return(true, nil)
		mockReportRepo.On("Create", ctx, mock.MatchedBy(func(report *models.Report) bool {
			return report.ReporterID == reporterID &&
				report.ItemType == interfaces.ItemTypeComment &&
				report.ItemID == commentRef.ID &&
				report.Reason == "spam" &&
				report.Status == models.StatusPending
		})).Return(nil)

		err := service.SubmitReport(ctx, reporterID, commentRef, "  spam  ")

		assert.NoError(t, err)
		mockReportRepo.AssertExpectations(t)
		mockContent.AssertExpectations(t)
	})

	t.Run("Empty reason is allowed", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		mockContent.On("Exists", ctx, commentRef).Return(true, nil)
		mockReportRepo.On("Create", ctx, mock.MatchedBy(func(report *models.Report) bool {
			return report.Reason == ""
		})).Return(nil)

		err := service.SubmitReport(ctx, reporterID, commentRef, "")

		assert.NoError(t, err)
		mockReportRepo.AssertExpectations(t)
	})

	t.Run("Item does not exist", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		mockContent.On("Exists", ctx, commentRef).Return(false, nil)

		err := service.SubmitReport(ctx, reporterID, commentRef, "spam")

		assert.ErrorIs(t, err, reportErrors.ErrItemNotFound)
		mockReportRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Duplicate report maps to conflict regardless of prior status", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		mockContent.On("Exists", ctx, commentRef).Return(true, nil)
		mockReportRepo.On("Create", ctx, mock.Anything).Return(reportRepository.ErrDuplicateReport)

		err := service.SubmitReport(ctx, reporterID, commentRef, "spam again")

		assert.ErrorIs(t, err, reportErrors.ErrDuplicateReport)
		mockReportRepo.AssertExpectations(t)
	})

	t.Run("Invalid item type", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		badRef := interfaces.ItemRef{Type: "thread", ID: commentRef.ID}
		err := service.SubmitReport(ctx, reporterID, badRef, "spam")

		assert.ErrorIs(t, err, reportErrors.ErrInvalidItemType)
		mockContent.AssertNotCalled(t, "Exists")
		mockReportRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Reason over the bound is rejected", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		longReason := strings.Repeat("x", MaxReasonLength+1)
		err := service.SubmitReport(ctx, reporterID, commentRef, longReason)

		assert.ErrorIs(t, err, reportErrors.ErrReasonTooLong)
		mockContent.AssertNotCalled(t, "Exists")
		mockReportRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Reason exactly at the bound is accepted", func(t *testing.T) {
		mockReportRepo := new(MockReportRepository)
		mockContent := new(MockContentStore)

		service := NewReportService(mockReportRepo, mockContent)

		mockContent.On("Exists", ctx, commentRef).Return(true, nil)
		mockReportRepo.On("Create", ctx, mock.Anything).Return(nil)

		err := service.SubmitReport(ctx, reporterID, commentRef, strings.Repeat("x", MaxReasonLength))

		assert.NoError(t, err)
		mockReportRepo.AssertExpectations(t)
	})
}
