package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"careplus/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ClinicFilter фильтр публичного поиска клиник.
type ClinicFilter struct {
	City  string
	Query string // подстрока названия клиники
}

// GormClinics читает клиники из БД. Изменяются они в другом сервисе.
type GormClinics struct {
	db *gorm.DB
}

func NewGormClinics(db *gorm.DB) *GormClinics {
	return &GormClinics{db: db}
}

func (r *GormClinics) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", clinicID, true).First(&clinic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *GormClinics) ListActive(ctx context.Context, f ClinicFilter) ([]models.Clinic, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if name := strings.TrimSpace(f.Query); name != "" {
		q = q.Where("LOWER(clinic_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	clinics := []models.Clinic{}
	if err := q.Order("stars DESC, clinic_name ASC").Find(&clinics).Error; err != nil {
		return nil, err
	}
	return clinics, nil
}

// ListByDoctor возвращает активные клиники врача, новые первыми.
func (r *GormClinics) ListByDoctor(ctx context.Context, doctorID string) ([]models.Clinic, error) {
	clinics := []models.Clinic{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("created_at DESC").
		Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

// ClinicSource источник, который оборачивает CachedClinics.
type ClinicSource interface {
	GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error)
	ListActive(ctx context.Context, f ClinicFilter) ([]models.Clinic, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Clinic, error)
}

// CachedClinics кэш Redis поверх ClinicSource. Ошибки Redis логируются,
// запрос уходит в источник.
type CachedClinics struct {
	next   ClinicSource
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedClinics(next ClinicSource, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedClinics {
	return &CachedClinics{next: next, client: client, ttl: ttl, log: log}
}

func clinicCacheKey(clinicID string) string {
	return "careplus:clinic:" + clinicID
}

func (c *CachedClinics) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	key := clinicCacheKey(clinicID)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var clinic models.Clinic
		err := json.Unmarshal([]byte(cached), &clinic)
		switch {
		case err != nil:
			c.log.Warn("clinic cache entry is corrupt", zap.String("key", key))
		case !clinic.IsActive:
			// Неактивную копию не отдаём, перечитываем из источника
			c.client.Del(ctx, key)
		default:
			return &clinic, nil
		}
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("clinic cache read failed", zap.String("key", key), zap.Error(err))
	}

	clinic, err := c.next.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(clinic); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("clinic cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return clinic, nil
}

func (c *CachedClinics) ListActive(ctx context.Context, f ClinicFilter) ([]models.Clinic, error) {
	return c.next.ListActive(ctx, f)
}

func (c *CachedClinics) ListByDoctor(ctx context.Context, doctorID string) ([]models.Clinic, error) {
	return c.next.ListByDoctor(ctx, doctorID)
}

// Invalidate удаляет клинику из кэша.
func (c *CachedClinics) Invalidate(ctx context.Context, clinicID string) error {
	return c.client.Del(ctx, clinicCacheKey(clinicID)).Err()
}
