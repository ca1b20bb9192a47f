package services

import (
	"context"
	"sync"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/repository"
)

// memoryStore is a ReportStore that can be told to fail individual steps.
type memoryStore struct {
	mu      sync.Mutex
	reports []models.Report
	nextID  uint
	calls   []Step
	failOn  map[Step]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{failOn: map[Step]error{}}
}

func (m *memoryStore) record(step Step) error {
	m.calls = append(m.calls, step)
	return m.failOn[step]
}

func (m *memoryStore) Create(ctx context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(StepInsert); err != nil {
		return err
	}
	m.nextID++
	report.ID = m.nextID
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(StepCountPending); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range m.reports {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) MarkNotified(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(StepMarkNotified); err != nil {
		return err
	}
	for i := range m.reports {
		if m.reports[i].ID == id {
			m.reports[i].Notified = true
			return nil
		}
	}
	return repository.ErrReportNotFound
}

func (m *memoryStore) LatestByContact(ctx context.Context, contact string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(StepLookup); err != nil {
		return nil, err
	}
	var latest *models.Report
	for i := range m.reports {
		r := &m.reports[i]
		if r.Contact != contact {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, repository.ErrReportNotFound
	}
	found := *latest
	return &found, nil
}

func (m *memoryStore) byID(id uint) (models.Report, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.ID == id {
			return r, true
		}
	}
	return models.Report{}, false
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
	// block makes Send wait for the context to expire.
	block bool
}

func (f *fakeMailer) Send(ctx context.Context, msg notify.Message) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
