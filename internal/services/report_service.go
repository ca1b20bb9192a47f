package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/repository"
)

type ReportServiceConfig struct {
	MailFrom         string
	MaintenanceEmail string
	StoreTimeout     time.Duration
	MailTimeout      time.Duration
}

// ReportService runs report intake and status lookups against a shared store
// and mail transport. It holds no per-report state between calls.
type ReportService struct {
	store   repository.ReportStore
	mailer  notify.Mailer
	metrics *metrics.Metrics
	cfg     ReportServiceConfig
	now     func() time.Time
}

func NewReportService(store repository.ReportStore, mailer notify.Mailer, m *metrics.Metrics, cfg ReportServiceConfig) *ReportService {
	return &ReportService{
		store:   store,
		mailer:  mailer,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

type SubmitResult struct {
	Report       *models.Report
	PendingCount int64
	// Notified is false when the email went out but the flag update failed.
	Notified bool
}

// Submit validates and stores a report, then emails the maintenance mailbox
// with the current pending count. Steps run strictly in order: insert,
// count, send, mark notified. A stored report is never removed when a later
// step fails, and a failed flag update does not fail the submission.
func (s *ReportService) Submit(ctx context.Context, req *dto.CreateReportRequest) (*SubmitResult, error) {
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	report := &models.Report{
		Name:      req.Name,
		Contact:   req.Contact,
		Location:  req.Location,
		Issue:     req.Issue,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	err := withTimeout(ctx, s.cfg.StoreTimeout, func(ctx context.Context) error {
		return s.store.Create(ctx, report)
	})
	if err != nil {
		return nil, s.fail(ctx, StepInsert, ErrPersistence, 0, err)
	}
	s.metrics.ReportSubmitted()

	var pending int64
	err = withTimeout(ctx, s.cfg.StoreTimeout, func(ctx context.Context) error {
		var err error
		pending, err = s.store.CountByStatus(ctx, models.StatusPending)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, StepCountPending, ErrPersistence, report.ID, err)
	}

	msg, err := notify.ComposeLeakReport(report, pending, s.cfg.MailFrom, s.cfg.MaintenanceEmail)
	if err != nil {
		return nil, s.fail(ctx, StepComposeNotification, ErrNotification, report.ID, err)
	}

	err = withTimeout(ctx, s.cfg.MailTimeout, func(ctx context.Context) error {
		return s.mailer.Send(ctx, msg)
	})
	if err != nil {
		return nil, s.fail(ctx, StepSendNotification, ErrNotification, report.ID, err)
	}
	s.metrics.NotificationSent()

	result := &SubmitResult{Report: report, PendingCount: pending}

	err = withTimeout(ctx, s.cfg.StoreTimeout, func(ctx context.Context) error {
		return s.store.MarkNotified(ctx, report.ID)
	})
	if err != nil {
		s.fail(ctx, StepMarkNotified, ErrPersistence, report.ID, err)
		return result, nil
	}

	report.Notified = true
	result.Notified = true
	slog.InfoContext(ctx, "leak report submitted", "report_id", report.ID, "pending_count", pending)
	return result, nil
}

// Status returns the most recently created report for contact. It returns
// ErrNoReport when the contact is valid but has never reported.
func (s *ReportService) Status(ctx context.Context, contact string) (*models.Report, error) {
	if err := ValidateLookupContact(contact); err != nil {
		s.metrics.StatusLookup("invalid")
		return nil, err
	}

	var report *models.Report
	err := withTimeout(ctx, s.cfg.StoreTimeout, func(ctx context.Context) error {
		var err error
		report, err = s.store.LatestByContact(ctx, contact)
		return err
	})
	if errors.Is(err, repository.ErrReportNotFound) {
		s.metrics.StatusLookup("not_found")
		return nil, ErrNoReport
	}
	if err != nil {
		s.metrics.StatusLookup("error")
		return nil, s.fail(ctx, StepLookup, ErrPersistence, 0, err)
	}

	s.metrics.StatusLookup("found")
	return report, nil
}

func (s *ReportService) fail(ctx context.Context, step Step, kind error, reportID uint, err error) *StepError {
	attrs := []any{"step", string(step), "error", err}
	if reportID != 0 {
		attrs = append(attrs, "report_id", reportID)
	}
	slog.ErrorContext(ctx, "report pipeline step failed", attrs...)
	s.metrics.StepFailed(string(step))
	return &StepError{Step: step, Kind: kind, Err: err}
}

func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return fn(ctx)
}
