// Package queue реализует дневную очередь клиники: запись пациентов,
// переходы состояний приёма и представления для чтения.
package queue

import (
	"context"
	"time"

	"careplus/internal/models"
	"careplus/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultServiceMinutes ожидаемая длительность одного приёма.
const DefaultServiceMinutes = 15

// PositionPolicy определяет, как считается позиция нового пациента.
type PositionPolicy string

const (
	// PositionLazy даёт len(entries)+1, перенумерация при следующем переходе.
	PositionLazy PositionPolicy = "lazy"
	// PositionCompact перенумеровывает ожидающих при каждом вступлении.
	PositionCompact PositionPolicy = "compact"
)

// Store хранилище очереди. UpdateDay выполняет mutate атомарно:
// при ошибке mutate сохранённый день не меняется. FindActiveDaysForPatient
// ищет только в указанном дне.
type Store interface {
	GetDay(ctx context.Context, key storage.DayKey) (*models.QueueDay, error)
	UpdateDay(ctx context.Context, key storage.DayKey, seed func() *models.QueueDay, mutate func(*models.QueueDay) error) (*models.QueueDay, error)
	FindActiveDaysForPatient(ctx context.Context, patientID, clinicID, day string) ([]*models.QueueDay, error)
}

// ClinicLookup ищет клинику, для неизвестных id возвращает storage.ErrNotFound.
type ClinicLookup interface {
	GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error)
}

type Service struct {
	store   Store
	clinics ClinicLookup
	log     *zap.Logger

	now            func() time.Time
	loc            *time.Location
	serviceMinutes int
	policy         PositionPolicy
	newID          func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithServiceMinutes(m int) Option {
	return func(s *Service) {
		if m > 0 {
			s.serviceMinutes = m
		}
	}
}

func WithPositionPolicy(p PositionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(store Store, clinics ClinicLookup, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:          store,
		clinics:        clinics,
		log:            log,
		now:            time.Now,
		loc:            time.Local,
		serviceMinutes: DefaultServiceMinutes,
		policy:         PositionLazy,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today полночь текущего дня в часовом поясе очереди.
func (s *Service) Today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// TodayKey ключ сегодняшнего дня очереди клиники.
func (s *Service) TodayKey(clinicID string) storage.DayKey {
	return storage.DayKey{ClinicID: clinicID, Day: s.Today().Format(models.DayLayout)}
}
