package response

import (
	"time"

	"careplus/internal/queue"
)

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: ALREADY_IN_QUEUE
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Вы уже стоите в этой очереди
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	Details string `json:"details,omitempty"`
}

// JoinResponse возвращается после постановки в очередь
type JoinResponse struct {
	EntryID  string `json:"entry_id" example:"1f0c6a3e-7b7b-4d8c-9d9e-1b2c3d4e5f60"`
	Position int    `json:"position" example:"4"`
	Day      string `json:"day" example:"2026-10-17"`
}

// EntryResponse описывает запись очереди
type EntryResponse struct {
	EntryID     string    `json:"entry_id"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Position    int       `json:"position" example:"2"`
	Status      string    `json:"status" example:"waiting"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DoctorQueueResponse полная очередь дня для врача
type DoctorQueueResponse struct {
	ClinicID string          `json:"clinic_id"`
	DoctorID string          `json:"doctor_id"`
	Day      string          `json:"day" example:"2026-10-17"`
	IsActive bool            `json:"is_active"`
	Version  int64           `json:"version"`
	Waiting  int             `json:"waiting"`
	Entries  []EntryResponse `json:"entries"`
}

// TransitionRequest тело запроса врача на смену статуса записи
type TransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=start-consultation finish cancel" example:"start-consultation"`
}

// JoinRequest тело запроса на постановку в очередь
type JoinRequest struct {
	// Если пусто, берётся имя из токена
	PatientName string `json:"patient_name" binding:"omitempty,max=100" example:"Ivan Petrov"`
}

// ClinicSummary краткие сведения о клинике для экрана пациента
type ClinicSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DoctorName      string  `json:"doctor_name"`
	City            string  `json:"city"`
	ConsultationFee float64 `json:"consultation_fee"`
}

// PatientQueueResponse позиция пациента и живая очередь вокруг неё
type PatientQueueResponse struct {
	*queue.PatientView
	Clinic *ClinicSummary `json:"clinic,omitempty"`
}
