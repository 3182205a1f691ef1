package queue

import (
	"context"
	"errors"
	"time"

	"careplus/internal/models"

	"go.uber.org/zap"
)

// StartConsultation переводит ожидающую запись на приём. Позиции не меняются.
func (s *Service) StartConsultation(ctx context.Context, clinicID, entryID string) (*models.QueueEntry, error) {
	return s.transition(ctx, clinicID, byEntryID(entryID), func(day *models.QueueDay, e *models.QueueEntry) error {
		if e.Status != models.StatusWaiting {
			return invalidState("cannot start consultation for %s entry", e.Status)
		}
		if cur := day.InConsultation(); cur != nil {
			return invalidState("entry %s is already in consultation", cur.ID)
		}
		e.Status = models.StatusInConsultation
		return nil
	}, false)
}

// Finish завершает приём. Завершить можно и сразу из ожидания.
func (s *Service) Finish(ctx context.Context, clinicID, entryID string) (*models.QueueEntry, error) {
	return s.transition(ctx, clinicID, byEntryID(entryID), finishEntry, true)
}

// Cancel снимает ожидающую запись с очереди.
func (s *Service) Cancel(ctx context.Context, clinicID, entryID string) (*models.QueueEntry, error) {
	return s.transition(ctx, clinicID, byEntryID(entryID), cancelEntry, true)
}

// Leave отменяет собственную ожидающую запись пациента в сегодняшней очереди клиники.
func (s *Service) Leave(ctx context.Context, clinicID, patientID string) (*models.QueueEntry, error) {
	entry, err := s.transition(ctx, clinicID, byPatient(patientID), cancelEntry, true)
	if errors.Is(err, ErrEntryNotFound) {
		return nil, ErrNotFound
	}
	return entry, err
}

func finishEntry(_ *models.QueueDay, e *models.QueueEntry) error {
	if e.Status != models.StatusInConsultation && e.Status != models.StatusWaiting {
		return invalidState("cannot finish %s entry", e.Status)
	}
	e.Status = models.StatusFinished
	return nil
}

func cancelEntry(_ *models.QueueDay, e *models.QueueEntry) error {
	if e.Status != models.StatusWaiting {
		return invalidState("cannot cancel %s entry", e.Status)
	}
	e.Status = models.StatusCancelled
	return nil
}

type entrySelector func(day *models.QueueDay) *models.QueueEntry

func byEntryID(id string) entrySelector {
	return func(day *models.QueueDay) *models.QueueEntry { return day.Entry(id) }
}

func byPatient(patientID string) entrySelector {
	return func(day *models.QueueDay) *models.QueueEntry { return day.ActiveEntryFor(patientID) }
}

// transition применяет один переход к сегодняшнему дню клиники
// за одно атомарное чтение-изменение-запись.
func (s *Service) transition(ctx context.Context, clinicID string, pick entrySelector, apply func(*models.QueueDay, *models.QueueEntry) error, renumberAfter bool) (*models.QueueEntry, error) {
	key := s.TodayKey(clinicID)
	now := s.now()

	var changed models.QueueEntry
	_, err := s.store.UpdateDay(ctx, key, nil, func(day *models.QueueDay) error {
		e := pick(day)
		if e == nil {
			return ErrEntryNotFound
		}
		from := e.Status
		if err := apply(day, e); err != nil {
			return err
		}
		e.UpdatedAt = now
		if renumberAfter {
			renumber(day.Entries, now)
		}
		day.UpdatedAt = now

		changed = *day.Entry(e.ID)
		s.log.Debug("queue entry transition",
			zap.String("clinic_id", clinicID),
			zap.String("entry_id", e.ID),
			zap.String("from", string(from)),
			zap.String("to", string(e.Status)))
		return nil
	})
	if isMissing(err) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &changed, nil
}

// renumber нумерует ожидающих с 1 в порядке вступления, остальным ставит 0.
func renumber(entries []models.QueueEntry, now time.Time) {
	next := 1
	for i := range entries {
		e := &entries[i]
		pos := 0
		if e.Status == models.StatusWaiting {
			pos = next
			next++
		}
		if e.Position != pos {
			e.Position = pos
			e.UpdatedAt = now
		}
	}
}
