// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	uuid "github.com/gofrs/uuid"

	reportErrors "github.com/forumkit/forum-api/reports/errors"
	"github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/interfaces"
)

// MaxReasonLength bounds the free-text reason a reporter may attach.
const MaxReasonLength = 500

// ReportService defines the interface for report submission
type ReportService interface {
	// SubmitReport files a report against an item. A reporter may report a
	// given item at most once, ever; a duplicate fails with a conflict no
	// matter what happened to the earlier report.
	SubmitReport(ctx context.Context, reporterID uuid.UUID, ref interfaces.ItemRef, reason string) error
}

// reportService implements the ReportService interface
type reportService struct {
	reportRepo reportRepository.ReportRepository
	content    interfaces.ContentStore
}

// NewReportService creates a new instance of the report service
func NewReportService(reportRepo reportRepository.ReportRepository, content interfaces.ContentStore) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		content:    content,
	}
}

// SubmitReport validates the reference, trims and bounds the reason, and
// inserts a pending report. Deduplication rides on the unique constraint,
// so two racing submissions cannot both land.
func (s *reportService) SubmitReport(ctx context.Context, reporterID uuid.UUID, ref interfaces.ItemRef, reason string) error {
	if !ref.Type.IsValid() {
		return fmt.Errorf("%w: %s", reportErrors.ErrInvalidItemType, ref.Type)
	}

	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return fmt.Errorf("%w: maximum %d characters", reportErrors.ErrReasonTooLong, MaxReasonLength)
	}

	exists, err := s.content.Exists(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if !exists {
		return reportErrors.ErrItemNotFound
	}

	reportID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate report id: %w", err)
	}

	report := &models.Report{
		ID:         reportID,
		ReporterID: reporterID,
		ItemType:   ref.Type,
		ItemID:     ref.ID,
		Reason:     reason,
		Status:     models.StatusPending,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, reportRepository.ErrDuplicateReport) {
			return reportErrors.ErrDuplicateReport
		}
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}
