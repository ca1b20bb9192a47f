package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

// ReportStore is the persistence contract the report services depend on.
type ReportStore interface {
	// Create inserts report and fills in its generated ID.
	Create(ctx context.Context, report *models.Report) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	MarkNotified(ctx context.Context, id uint) error
	// LatestByContact returns the most recently created report for contact,
	// or ErrReportNotFound.
	LatestByContact(ctx context.Context, contact string) (*models.Report, error)
}

type GormReportStore struct {
	db *gorm.DB
}

func NewGormReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (r *GormReportStore) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *GormReportStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s reports: %w", status, err)
	}
	return count, nil
}

func (r *GormReportStore) MarkNotified(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Update("notified", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark report %d notified: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *GormReportStore) LatestByContact(ctx context.Context, contact string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("contact = ?", contact).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Take(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up report by contact: %w", err)
	}
	return &report, nil
}
