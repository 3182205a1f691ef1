package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"careplus/internal/models"
)

// MemoryStore хранит дни очереди в памяти процесса. Изменения одного дня
// идут под его блокировкой, фиксация копированием.
type MemoryStore struct {
	locks keyedMutex

	mu     sync.RWMutex
	days   map[DayKey]*models.QueueDay
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: make(map[DayKey]*models.QueueDay)}
}

func (s *MemoryStore) GetDay(ctx context.Context, key DayKey) (*models.QueueDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[key]
	if !ok {
		return nil, ErrNotFound
	}
	return day.Clone(), nil
}

func (s *MemoryStore) UpdateDay(ctx context.Context, key DayKey, seed func() *models.QueueDay, mutate func(*models.QueueDay) error) (*models.QueueDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := s.locks.lock(key)
	defer unlock()

	s.mu.RLock()
	current, ok := s.days[key]
	s.mu.RUnlock()

	var work *models.QueueDay
	switch {
	case ok:
		work = current.Clone()
	case seed != nil:
		work = seed()
		work.ClinicID, work.Day = key.ClinicID, key.Day
		work.IsActive = true
		work.CreatedAt = time.Now()
	default:
		return nil, ErrNotFound
	}

	if err := mutate(work); err != nil {
		return nil, err
	}

	work.Version++
	if work.UpdatedAt.IsZero() {
		work.UpdatedAt = time.Now()
	}

	s.mu.Lock()
	if work.ID == 0 {
		s.nextID++
		work.ID = s.nextID
	}
	for i := range work.Entries {
		work.Entries[i].QueueDayID = work.ID
	}
	s.days[key] = work.Clone()
	s.mu.Unlock()

	return work, nil
}

// FindActiveDaysForPatient активные очереди дня day с ожидающей или идущей
// записью пациента, самые свежие первыми.
func (s *MemoryStore) FindActiveDaysForPatient(ctx context.Context, patientID, clinicID, day string) ([]*models.QueueDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.QueueDay
	for key, d := range s.days {
		if key.Day != day || (clinicID != "" && key.ClinicID != clinicID) {
			continue
		}
		if d.IsActive && d.ActiveEntryFor(patientID) != nil {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// CloseDaysBefore деактивирует все активные дни раньше day.
func (s *MemoryStore) CloseDaysBefore(ctx context.Context, day string) ([]DayKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var stale []DayKey
	for key, d := range s.days {
		if d.IsActive && key.Day < day {
			stale = append(stale, key)
		}
	}
	s.mu.RUnlock()

	var closed []DayKey
	for _, key := range stale {
		_, err := s.UpdateDay(ctx, key, nil, func(d *models.QueueDay) error {
			if !d.IsActive {
				return errAlreadyClosed
			}
			d.IsActive = false
			d.UpdatedAt = time.Now()
			return nil
		})
		if err == errAlreadyClosed {
			continue
		}
		if err != nil {
			return closed, err
		}
		closed = append(closed, key)
	}
	sort.Slice(closed, func(i, j int) bool { return closed[i].String() < closed[j].String() })
	return closed, nil
}
