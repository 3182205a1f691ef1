package models

import "time"

type EntryStatus string

const (
	StatusWaiting        EntryStatus = "waiting"
	StatusInConsultation EntryStatus = "in-consultation"
	StatusFinished       EntryStatus = "finished"
	StatusCancelled      EntryStatus = "cancelled"
)

// Active: запись ещё занимает место в очереди.
func (s EntryStatus) Active() bool {
	return s == StatusWaiting || s == StatusInConsultation
}

type QueueEntry struct {
	ID          string      `gorm:"primaryKey;size:36"`
	QueueDayID  uint        `gorm:"index;not null"`
	Seq         int         `gorm:"not null"` // Порядковый номер вступления за день, задаёт исходный порядок
	PatientID   string      `gorm:"index;size:36;not null"`
	PatientName string      `gorm:"not null"`
	Position    int         `gorm:"index;not null"` // Текущая позиция в очереди, 0 вне порядка ожидания
	Status      EntryStatus `gorm:"size:20;index;not null"`
	JoinedAt    time.Time   `gorm:"not null"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime:false"`
}
