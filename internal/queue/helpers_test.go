package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"careplus/internal/models"
	"careplus/internal/queue"
	"careplus/internal/storage"

	"go.uber.org/zap"
)

type fakeClinics map[string]*models.Clinic

func (f fakeClinics) GetClinic(_ context.Context, id string) (*models.Clinic, error) {
	c, ok := f[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

// testClock часы, которые сдвигаются на секунду при каждом чтении,
// чтобы обновления были строго упорядочены.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fixture struct {
	svc   *queue.Service
	store *storage.MemoryStore
	clock *testClock
}

func newFixture(t *testing.T, opts ...queue.Option) *fixture {
	t.Helper()
	clinics := fakeClinics{
		"C1": {ID: "C1", DoctorID: "D1", ClinicName: "City Care", ConsultationFee: 300, IsActive: true},
		"C2": {ID: "C2", DoctorID: "D2", ClinicName: "Lake Clinic", IsActive: true},
	}
	clock := &testClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	var seq int64
	base := []queue.Option{
		queue.WithClock(clock.Now),
		queue.WithLocation(time.UTC),
		queue.WithIDGenerator(func() string {
			return fmt.Sprintf("e%d", atomic.AddInt64(&seq, 1))
		}),
	}
	store := storage.NewMemoryStore()
	return &fixture{
		svc:   queue.NewService(store, clinics, zap.NewNop(), append(base, opts...)...),
		store: store,
		clock: clock,
	}
}

func (f *fixture) day(t *testing.T, clinicID string) *models.QueueDay {
	t.Helper()
	day, err := f.svc.DoctorView(context.Background(), clinicID)
	if err != nil {
		t.Fatalf("doctor view: %v", err)
	}
	return day
}

func (f *fixture) entryOf(t *testing.T, clinicID, patientID string) *models.QueueEntry {
	t.Helper()
	day := f.day(t, clinicID)
	e := day.ActiveEntryFor(patientID)
	if e == nil {
		t.Fatalf("no active entry for %s", patientID)
	}
	return e
}

// waitingPositions позиции ожидающих в порядке вступления.
func waitingPositions(day *models.QueueDay) []int {
	out := []int{}
	for _, e := range day.Entries {
		if e.Status == models.StatusWaiting {
			out = append(out, e.Position)
		}
	}
	return out
}

func countStatus(day *models.QueueDay, st models.EntryStatus) int {
	n := 0
	for _, e := range day.Entries {
		if e.Status == st {
			n++
		}
	}
	return n
}

type brokenStore struct{ queue.Store }

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func (brokenStore) GetDay(context.Context, storage.DayKey) (*models.QueueDay, error) {
	return nil, errConnRefused
}

func (brokenStore) UpdateDay(context.Context, storage.DayKey, func() *models.QueueDay, func(*models.QueueDay) error) (*models.QueueDay, error) {
	return nil, errConnRefused
}

func (brokenStore) FindActiveDaysForPatient(context.Context, string, string, string) ([]*models.QueueDay, error) {
	return nil, errConnRefused
}
