package storage

import (
	"context"
	"errors"
	"time"

	"careplus/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore хранит дни очереди в SQL. Каждый UpdateDay идёт в транзакции
// с блокировкой строки queue_days.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func orderBySeq(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

func (s *GormStore) GetDay(ctx context.Context, key DayKey) (*models.QueueDay, error) {
	var day models.QueueDay
	err := s.db.WithContext(ctx).
		Preload("Entries", orderBySeq).
		Where("clinic_id = ? AND day = ?", key.ClinicID, key.Day).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *GormStore) UpdateDay(ctx context.Context, key DayKey, seed func() *models.QueueDay, mutate func(*models.QueueDay) error) (*models.QueueDay, error) {
	var out *models.QueueDay
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if seed != nil {
			// Создаём день, если его ещё нет; при гонке двух вступлений второе INSERT ничего не сделает.
			fresh := seed()
			fresh.ClinicID, fresh.Day = key.ClinicID, key.Day
			fresh.IsActive = true
			fresh.Entries = nil
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fresh).Error; err != nil {
				return err
			}
		}

		var day models.QueueDay
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("clinic_id = ? AND day = ?", key.ClinicID, key.Day).
			First(&day).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("queue_day_id = ?", day.ID).Order("seq ASC").Find(&day.Entries).Error; err != nil {
			return err
		}

		before := make(map[string]models.QueueEntry, len(day.Entries))
		for _, e := range day.Entries {
			before[e.ID] = e
		}

		if err := mutate(&day); err != nil {
			return err
		}

		for i := range day.Entries {
			e := &day.Entries[i]
			e.QueueDayID = day.ID
			old, existed := before[e.ID]
			switch {
			case !existed:
				if err := tx.Create(e).Error; err != nil {
					return err
				}
			case old != *e:
				if err := tx.Save(e).Error; err != nil {
					return err
				}
			}
		}

		day.Version++
		if day.UpdatedAt.IsZero() {
			day.UpdatedAt = time.Now()
		}
		if err := tx.Model(&models.QueueDay{}).Where("id = ?", day.ID).Updates(map[string]interface{}{
			"version":    day.Version,
			"is_active":  day.IsActive,
			"updated_at": day.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		out = &day
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindActiveDaysForPatient активные очереди дня day с ожидающей или идущей
// записью пациента, самые свежие первыми.
func (s *GormStore) FindActiveDaysForPatient(ctx context.Context, patientID, clinicID, day string) ([]*models.QueueDay, error) {
	held := s.db.Model(&models.QueueEntry{}).
		Select("queue_day_id").
		Where("patient_id = ? AND status IN ?", patientID, []string{
			string(models.StatusWaiting),
			string(models.StatusInConsultation),
		})

	q := s.db.WithContext(ctx).
		Preload("Entries", orderBySeq).
		Where("day = ? AND is_active = ? AND id IN (?)", day, true, held)
	if clinicID != "" {
		q = q.Where("clinic_id = ?", clinicID)
	}

	var days []models.QueueDay
	if err := q.Order("updated_at DESC").Find(&days).Error; err != nil {
		return nil, err
	}
	out := make([]*models.QueueDay, 0, len(days))
	for i := range days {
		out = append(out, &days[i])
	}
	return out, nil
}

// CloseDaysBefore деактивирует все активные дни раньше day.
func (s *GormStore) CloseDaysBefore(ctx context.Context, day string) ([]DayKey, error) {
	var closed []DayKey
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale []models.QueueDay
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "clinic_id", "day").
			Where("is_active = ? AND day < ?", true, day).
			Order("clinic_id, day").
			Find(&stale).Error; err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(stale))
		for _, d := range stale {
			ids = append(ids, d.ID)
			closed = append(closed, DayKey{ClinicID: d.ClinicID, Day: d.Day})
		}
		return tx.Model(&models.QueueDay{}).Where("id IN ?", ids).Updates(map[string]interface{}{
			"is_active": false,
			"version":   gorm.Expr("version + 1"),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
