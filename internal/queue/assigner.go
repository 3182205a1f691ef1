package queue

import (
	"context"

	"careplus/internal/models"

	"go.uber.org/zap"
)

// Join ставит пациента в сегодняшнюю очередь клиники и возвращает позицию.
func (s *Service) Join(ctx context.Context, clinicID, patientID, patientName string) (int, error) {
	entry, err := s.JoinEntry(ctx, clinicID, patientID, patientName)
	if err != nil {
		return 0, err
	}
	return entry.Position, nil
}

// JoinEntry то же, что Join, но возвращает добавленную запись целиком.
func (s *Service) JoinEntry(ctx context.Context, clinicID, patientID, patientName string) (*models.QueueEntry, error) {
	clinic, err := s.clinics.GetClinic(ctx, clinicID)
	if isMissing(err) {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}

	today := s.Today()
	now := s.now()
	seed := func() *models.QueueDay {
		return &models.QueueDay{
			ClinicID: clinicID,
			DoctorID: clinic.DoctorID,
			Date:     today,
			IsActive: true,
		}
	}

	var joined models.QueueEntry
	_, err = s.store.UpdateDay(ctx, s.TodayKey(clinicID), seed, func(day *models.QueueDay) error {
		if day.ActiveEntryFor(patientID) != nil {
			return ErrAlreadyQueued
		}

		// Позиция считается по всем записям дня, включая завершённые;
		// перенумерация происходит при следующем переходе состояния.
		next := len(day.Entries) + 1
		day.Entries = append(day.Entries, models.QueueEntry{
			ID:          s.newID(),
			Seq:         next,
			PatientID:   patientID,
			PatientName: patientName,
			Position:    next,
			Status:      models.StatusWaiting,
			JoinedAt:    now,
			UpdatedAt:   now,
		})
		if s.policy == PositionCompact {
			renumber(day.Entries, now)
		}
		day.UpdatedAt = now

		joined = day.Entries[len(day.Entries)-1]
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.log.Info("patient joined queue",
		zap.String("clinic_id", clinicID),
		zap.String("patient_id", patientID),
		zap.String("entry_id", joined.ID),
		zap.Int("position", joined.Position))
	return &joined, nil
}
