package models

import (
	"time"

	"gorm.io/gorm"
)

// Clinic место приёма врача. Очередь только читает эту таблицу.
type Clinic struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	DoctorID        string         `gorm:"index:idx_clinic_doctor_active;not null" json:"doctor_id"`
	DoctorName      string         `json:"doctor_name"`
	ClinicName      string         `gorm:"size:100;not null" json:"clinic_name"`
	Street          string         `json:"street"`
	City            string         `gorm:"index" json:"city"`
	State           string         `json:"state"`
	Pincode         string         `gorm:"size:6" json:"pincode"`
	ContactNumber   string         `gorm:"size:10" json:"contact_number"`
	Days            string         `json:"days"` // Список рабочих дней через запятую, например "Monday,Tuesday"
	StartTime       string         `json:"start_time"`
	EndTime         string         `json:"end_time"`
	Facilities      string         `json:"facilities"`
	ConsultationFee float64        `json:"consultation_fee"`
	Stars           float64        `json:"stars"`
	ReviewsCount    int            `json:"reviews_count"`
	IsActive        bool           `gorm:"index:idx_clinic_doctor_active;default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
