package recordsRepo

import (
	"context"
	"sync"

	"medibook/models"
)

// MemoryRecordArchive keeps records in process memory, for tests and
// deployments without MongoDB.
type MemoryRecordArchive struct {
	mu      sync.Mutex
	records map[string]models.BookingRecord
}

// NewMemoryRecordArchive returns an empty in-memory archive.
func NewMemoryRecordArchive() *MemoryRecordArchive {
	return &MemoryRecordArchive{records: make(map[string]models.BookingRecord)}
}

func (a *MemoryRecordArchive) Archive(_ context.Context, record *models.BookingRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[record.TicketID] = *record
	return nil
}

func (a *MemoryRecordArchive) GetByTicketID(_ context.Context, ticketID string) (*models.BookingRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.records[ticketID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (a *MemoryRecordArchive) ListByKind(_ context.Context, kind models.WorkflowKind) ([]models.BookingRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.BookingRecord
	for _, rec := range a.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}
